// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bibliobuddy/internal/config"
	"github.com/phrazzld/bibliobuddy/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", "debug", slog.LevelDebug, true},
		{"uppercase info", "INFO", slog.LevelInfo, true},
		{"warn", "warn", slog.LevelWarn, true},
		{"error", "Error", slog.LevelError, true},
		{"unknown falls back to info", "verbose", slog.LevelInfo, false},
		{"empty falls back to info", "", slog.LevelInfo, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.want, level)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestNewWritesJSONAtConfiguredLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	l := logger.New(config.ServerConfig{LogLevel: "warn", Port: 8080}, buf)

	l.Info("should be filtered")
	l.Warn("kept", slog.String("mode", "synonyms"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
	assert.Equal(t, "synonyms", entries[0]["mode"])
}

func TestSetupReturnsDefaultLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "info", Port: 8080})

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
}

func TestContextLogger(t *testing.T) {
	buf, l := logger.NewTestLogger(t)
	fallback := slog.New(slog.NewTextHandler(&logger.TestLogBuffer{}, nil))

	t.Run("missing logger returns fallback", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("stored logger wins", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), l)
		got := logger.FromContextOrDefault(ctx, fallback)
		assert.Same(t, l, got)

		got.Debug("from context")
		logger.AssertLogContains(t, buf, "from context")
	})

	t.Run("nil fallback returns default", func(t *testing.T) {
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
	})
}
