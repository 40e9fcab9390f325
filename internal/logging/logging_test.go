package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Format: "json", Level: "warn"})

	logger.Info().Msg("hidden")
	logger.Warn().Str("endpoint", "games").Msg("rate limited")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "exactly one JSON line expected: %s", buf.String())
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "games", line["endpoint"])
	assert.Equal(t, "rate limited", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Format: "console", Level: "debug"})

	logger.Debug().Msg("cache hit")
	assert.Contains(t, buf.String(), "cache hit")
	assert.False(t, json.Valid(buf.Bytes()))
}
