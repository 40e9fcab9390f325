// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	IGDB IGDBConfig `envPrefix:"IGDB_"`
}

// IGDBConfig holds IGDB-specific configuration
type IGDBConfig struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	BaseURL      string        `env:"BASE_URL" envDefault:"https://api.igdb.com/v4"`
	TokenURL     string        `env:"TOKEN_URL" envDefault:"https://id.twitch.tv/oauth2/token"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// AllowCustomQueries exposes the raw query passthrough on the HTTP API
	AllowCustomQueries bool `env:"ALLOW_CUSTOM_QUERIES" envDefault:"false"`
}

// Load reads configuration from environment variables.
// Missing IGDB credentials are not an error; the client runs unconfigured.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HasIGDB returns true if IGDB credentials are complete
func (c *Config) HasIGDB() bool {
	return c.IGDB.ClientID != "" && c.IGDB.ClientSecret != ""
}

// Validate checks the values that have no safe fallback
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.IGDB.CacheTTL <= 0 {
		return fmt.Errorf("IGDB_CACHE_TTL must be positive, got %s", c.IGDB.CacheTTL)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}
