package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Port != def.Port {
		t.Errorf("Port = %d, want %d", cfg.Port, def.Port)
	}
	if cfg.MaxImageBytes != def.MaxImageBytes {
		t.Errorf("MaxImageBytes = %d, want %d", cfg.MaxImageBytes, def.MaxImageBytes)
	}
	if cfg.SessionTTL != 24*7*time.Hour {
		t.Errorf("SessionTTL = %v, want 168h", cfg.SessionTTL)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(map[string]any{
		"port":              9000,
		"public_origin":     "https://memories.example.edu",
		"cors_origins":      []string{"https://memories.example.edu"},
		"session_ttl_hours": 1,
	})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.PublicOrigin != "https://memories.example.edu" {
		t.Errorf("PublicOrigin = %q", cfg.PublicOrigin)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "https://memories.example.edu" {
		t.Errorf("CorsOrigins = %v", cfg.CorsOrigins)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	// Untouched fields keep their defaults
	if cfg.ThumbnailSize != DefaultConfig().ThumbnailSize {
		t.Errorf("ThumbnailSize = %d, want default", cfg.ThumbnailSize)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load succeeded on invalid JSON, want error")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(map[string]any{"port": 9000})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEMORIES_PORT", "9100")
	t.Setenv("MEMORIES_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want 9100 from env", cfg.Port)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "https://b.example" {
		t.Errorf("CorsOrigins = %v", cfg.CorsOrigins)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{Port: 1234, BcryptCost: 6}

	got := Merge(base, overlay)
	if got.Port != 1234 {
		t.Errorf("Port = %d, want overlay value", got.Port)
	}
	if got.BcryptCost != 6 {
		t.Errorf("BcryptCost = %d, want 6", got.BcryptCost)
	}
	if got.Host != base.Host {
		t.Errorf("Host = %q, want base value", got.Host)
	}
}
