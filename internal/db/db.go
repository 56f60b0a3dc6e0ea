package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campusfest/memories/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/memories.db and the
// directories for stored images and exports. The baseDir parameter allows
// tests to use t.TempDir() instead of ~/.memories.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	for _, sub := range []string{"images", "thumbs", "exports"} {
		dir := filepath.Join(baseDir, sub)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
		_ = os.Chmod(dir, 0700)
	}

	// Open database with pragmas in connection string (applies to all connections)
	dbPath := filepath.Join(baseDir, "memories.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(database); err != nil {
		database.Close()
		return nil, err
	}

	if err := migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return database, nil
}

// ImagesDir returns the directory where original upload bytes live.
func ImagesDir(baseDir string) string { return filepath.Join(baseDir, "images") }

// ThumbsDir returns the directory where derived thumbnails live.
func ThumbsDir(baseDir string) string { return filepath.Join(baseDir, "thumbs") }

// ExportsDir returns the directory where JSONL exports are written.
func ExportsDir(baseDir string) string { return filepath.Join(baseDir, "exports") }

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(database *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(database *sql.DB) error {
	version, err := GetUserVersion(database)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS users (
		  id            TEXT PRIMARY KEY,
		  email         TEXT NOT NULL,
		  email_norm    TEXT NOT NULL UNIQUE,
		  password_hash TEXT NOT NULL,
		  first_name    TEXT NOT NULL,
		  last_name     TEXT NOT NULL,
		  phone         TEXT,
		  college       TEXT,
		  created_at    INTEGER NOT NULL,
		  updated_at    INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
		  token      TEXT PRIMARY KEY,
		  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		  created_at INTEGER NOT NULL,
		  expires_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

		CREATE TABLE IF NOT EXISTS uploads (
		  id          TEXT PRIMARY KEY,
		  user_id     TEXT REFERENCES users(id) ON DELETE SET NULL,
		  title       TEXT NOT NULL,
		  description TEXT,
		  image_path  TEXT NOT NULL,
		  thumb_path  TEXT,
		  taken_at    INTEGER,
		  likes       INTEGER NOT NULL DEFAULT 0,
		  location    TEXT,
		  tags_json   TEXT,
		  created_at  INTEGER NOT NULL,
		  updated_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_uploads_created ON uploads(created_at DESC);

		CREATE TABLE IF NOT EXISTS comments (
		  id         TEXT PRIMARY KEY,
		  moment_id  TEXT NOT NULL,
		  parent_id  TEXT REFERENCES comments(id) ON DELETE CASCADE,
		  user_id    TEXT REFERENCES users(id) ON DELETE SET NULL,
		  author     TEXT NOT NULL,
		  avatar     TEXT NOT NULL DEFAULT '',
		  body       TEXT NOT NULL,
		  base_likes INTEGER NOT NULL DEFAULT 0,
		  created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_comments_moment ON comments(moment_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(parent_id);

		CREATE TABLE IF NOT EXISTS comment_likes (
		  user_id    TEXT NOT NULL,
		  comment_id TEXT NOT NULL,
		  created_at INTEGER NOT NULL,
		  PRIMARY KEY (user_id, comment_id)
		);

		CREATE TABLE IF NOT EXISTS moment_likes (
		  user_id    TEXT NOT NULL,
		  moment_id  TEXT NOT NULL,
		  created_at INTEGER NOT NULL,
		  PRIMARY KEY (user_id, moment_id)
		);

		CREATE TABLE IF NOT EXISTS moment_bookmarks (
		  user_id    TEXT NOT NULL,
		  moment_id  TEXT NOT NULL,
		  created_at INTEGER NOT NULL,
		  PRIMARY KEY (user_id, moment_id)
		);

		CREATE TABLE IF NOT EXISTS reports (
		  id          TEXT PRIMARY KEY,
		  kind        TEXT NOT NULL CHECK (kind IN ('moment', 'comment')),
		  target_id   TEXT NOT NULL,
		  reason      TEXT NOT NULL,
		  details     TEXT,
		  reporter_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		  created_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_target ON reports(kind, target_id);
		`
		if _, err := database.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(database, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(database *sql.DB) error {
	var journalMode string
	if err := database.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(database *sql.DB) (int, error) {
	var version int
	if err := database.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(database *sql.DB, version int) error {
	_, err := database.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
