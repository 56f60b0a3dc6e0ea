package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Host is the interface the HTTP server binds to.
	Host string `json:"host,omitempty"`

	// Port is the HTTP server port.
	Port int `json:"port,omitempty"`

	// PublicOrigin is the externally visible origin used when building share
	// links (e.g. "https://memories.example.edu"). When empty, share links
	// are built from the request's Host header.
	PublicOrigin string `json:"public_origin,omitempty"`

	// CorsOrigins is the allowlist for cross-origin requests from the web
	// client. Defaults to "*" for development.
	CorsOrigins []string `json:"cors_origins,omitempty"`

	// MaxImageBytes caps the size of an uploaded photo.
	MaxImageBytes int64 `json:"max_image_bytes,omitempty"`

	// ThumbnailSize is the bounding box (pixels) for derived thumbnails.
	ThumbnailSize int `json:"thumbnail_size,omitempty"`

	// SessionTTL is how long a sign-in session stays valid.
	SessionTTL time.Duration `json:"-"`

	// SessionTTLHours is the JSON-facing form of SessionTTL.
	SessionTTLHours int `json:"session_ttl_hours,omitempty"`

	// BcryptCost is the work factor for password hashing. 0 means the
	// library default.
	BcryptCost int `json:"bcrypt_cost,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8560,
		CorsOrigins:     []string{"*"},
		MaxImageBytes:   10 << 20,
		ThumbnailSize:   300,
		SessionTTLHours: 24 * 7,
		SessionTTL:      24 * 7 * time.Hour,
	}
}

// Load loads configuration from baseDir/config.json, then applies
// environment-variable overrides. Returns defaults if the file doesn't
// exist. The baseDir parameter allows tests to use t.TempDir().
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	cfg.SessionTTL = time.Duration(cfg.SessionTTLHours) * time.Hour
	return cfg, nil
}

// loadFile loads configuration from a specific file path.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for non-zero scalars; the CORS list is replaced wholesale when set.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Host = overlay.Host
	if result.Host == "" {
		result.Host = base.Host
	}
	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}
	result.PublicOrigin = overlay.PublicOrigin
	if result.PublicOrigin == "" {
		result.PublicOrigin = base.PublicOrigin
	}
	result.CorsOrigins = overlay.CorsOrigins
	if len(result.CorsOrigins) == 0 {
		result.CorsOrigins = base.CorsOrigins
	}
	result.MaxImageBytes = overlay.MaxImageBytes
	if result.MaxImageBytes == 0 {
		result.MaxImageBytes = base.MaxImageBytes
	}
	result.ThumbnailSize = overlay.ThumbnailSize
	if result.ThumbnailSize == 0 {
		result.ThumbnailSize = base.ThumbnailSize
	}
	result.SessionTTLHours = overlay.SessionTTLHours
	if result.SessionTTLHours == 0 {
		result.SessionTTLHours = base.SessionTTLHours
	}
	result.BcryptCost = overlay.BcryptCost
	if result.BcryptCost == 0 {
		result.BcryptCost = base.BcryptCost
	}
	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}
	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	return result
}

// applyEnv overlays environment variables on top of file configuration.
// Variables use the MEMORIES_ prefix.
func applyEnv(cfg *Config) {
	cfg.Host = getEnv("MEMORIES_HOST", cfg.Host)
	cfg.Port = getEnvAsInt("MEMORIES_PORT", cfg.Port)
	cfg.PublicOrigin = getEnv("MEMORIES_PUBLIC_ORIGIN", cfg.PublicOrigin)
	cfg.CorsOrigins = getEnvAsSlice("MEMORIES_CORS_ORIGINS", cfg.CorsOrigins)
	cfg.MaxImageBytes = int64(getEnvAsInt("MEMORIES_MAX_IMAGE_BYTES", int(cfg.MaxImageBytes)))
	cfg.ThumbnailSize = getEnvAsInt("MEMORIES_THUMBNAIL_SIZE", cfg.ThumbnailSize)
	cfg.SessionTTLHours = getEnvAsInt("MEMORIES_SESSION_TTL_HOURS", cfg.SessionTTLHours)
	cfg.BcryptCost = getEnvAsInt("MEMORIES_BCRYPT_COST", cfg.BcryptCost)
	cfg.DBMaxOpenConns = getEnvAsInt("MEMORIES_DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = getEnvAsInt("MEMORIES_DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
