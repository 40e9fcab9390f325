package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func TestLoad(t *testing.T) {
	t.Setenv("IGDB_CLIENT_ID", "test_id")
	t.Setenv("IGDB_CLIENT_SECRET", "test_secret")
	t.Setenv("IGDB_CACHE_TTL", "90s")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.IGDB.ClientID != "test_id" {
		t.Errorf("Expected ClientID 'test_id', got '%s'", cfg.IGDB.ClientID)
	}

	if cfg.IGDB.ClientSecret != "test_secret" {
		t.Errorf("Expected ClientSecret 'test_secret', got '%s'", cfg.IGDB.ClientSecret)
	}

	if cfg.IGDB.CacheTTL != 90*time.Second {
		t.Errorf("Expected CacheTTL 90s, got %s", cfg.IGDB.CacheTTL)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected Port '9090', got '%s'", cfg.Port)
	}

	if !cfg.HasIGDB() {
		t.Error("Should have IGDB configured")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	if cfg.HasIGDB() {
		t.Error("Should not have IGDB configured without credentials")
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}
	if cfg.IGDB.CacheTTL != 5*time.Minute {
		t.Errorf("Expected default CacheTTL 5m, got %s", cfg.IGDB.CacheTTL)
	}
	if cfg.IGDB.BaseURL != "https://api.igdb.com/v4" {
		t.Errorf("Unexpected default BaseURL %s", cfg.IGDB.BaseURL)
	}
	if cfg.IGDB.TokenURL != "https://id.twitch.tv/oauth2/token" {
		t.Errorf("Unexpected default TokenURL %s", cfg.IGDB.TokenURL)
	}
	if cfg.IGDB.AllowCustomQueries {
		t.Error("Custom queries should be disabled by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("Unexpected log defaults %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unparsable ttl", map[string]string{"IGDB_CACHE_TTL": "soon"}},
		{"zero ttl", map[string]string{"IGDB_CACHE_TTL": "0s"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"bad bool", map[string]string{"IGDB_ALLOW_CUSTOM_QUERIES": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(env.Options{Environment: tt.env}); err == nil {
				t.Errorf("Expected error for %v", tt.env)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "8080", LogFormat: "console", IGDB: IGDBConfig{CacheTTL: time.Minute}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Should not error with valid config: %v", err)
	}

	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error with empty port")
	}

	cfg = &Config{Port: "8080", LogFormat: "json", IGDB: IGDBConfig{ClientID: "id"}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error with zero cache TTL")
	}
	if cfg.HasIGDB() {
		t.Error("Should not have IGDB configured with only a client id")
	}
}
