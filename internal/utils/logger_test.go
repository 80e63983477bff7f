package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("pretty output to a buffer has no colors", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{Level: "info", Format: FormatPretty, Output: &buf})
		logger.Info().Str("key", "main.js").Msg("resolved")
		assert.Contains(t, buf.String(), "resolved")
		assert.Contains(t, buf.String(), "key=main.js")
		assert.NotContains(t, buf.String(), "\x1b[")
	})

	t.Run("empty format is pretty", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{Output: &buf})
		logger.Info().Msg("test")
		assert.NotContains(t, buf.String(), `"message"`)
		assert.Contains(t, buf.String(), "test")
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "json",
			Output: &buf,
		})
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), `"message":"test"`)
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "pretty",
			Output: &buf,
		})
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), "test")
	})

	t.Run("verbose option enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:   "error",
			Format:  "json",
			Output:  &buf,
			Verbose: true,
		})
		logger.Debug().Msg("debug test")
		assert.Contains(t, buf.String(), "debug test")
	})
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithComponent("manifest").Error().Msg("dropped")
	})
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("manifest").Info().Msg("test message")

	output := buf.String()
	assert.Contains(t, output, `"component":"manifest"`)
	assert.Contains(t, output, "test message")
}

func TestLogger_WithLoader(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithLoader("vite").Info().Msg("test message")

	assert.Contains(t, buf.String(), `"loader":"vite"`)
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logFunc   func(*Logger)
		shouldLog bool
	}{
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug().Msg("debug") }, true},
		{"info level drops debug", "info", func(l *Logger) { l.Debug().Msg("debug") }, false},
		{"info level logs info", "info", func(l *Logger) { l.Info().Msg("info") }, true},
		{"warn level drops info", "warn", func(l *Logger) { l.Info().Msg("info") }, false},
		{"error level logs error", "error", func(l *Logger) { l.Error().Msg("error") }, true},
		{"unknown level falls back to info", "loud", func(l *Logger) { l.Info().Msg("info") }, true},
		{"level is case insensitive", "DEBUG", func(l *Logger) { l.Debug().Msg("debug") }, true},
		{"trace level logs trace", "trace", func(l *Logger) { l.Trace().Msg("trace") }, true},
		{"warning alias", "warning", func(l *Logger) { l.Warn().Msg("warn") }, true},
		{"off drops errors", "off", func(l *Logger) { l.Error().Msg("error") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(LoggerOptions{Level: tt.level, Format: "json", Output: &buf})

			tt.logFunc(logger)

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
