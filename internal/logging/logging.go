// Package logging builds the application's zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Format string // "json" or "console"
	Level  string // "debug", "info", "warn", "error"
}

// New creates a logger writing to stdout
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer, cfg Config) zerolog.Logger {
	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel converts a string level to zerolog.Level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
