package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikubinfo/enrollment-engine/internal/config"
	"github.com/ikubinfo/enrollment-engine/internal/logger"
)

func TestNewRespectsLevel(t *testing.T) {
	cfg := &config.Config{AppEnv: "development", LogLevel: slog.LevelWarn}

	log := logger.New(cfg)
	require.NotNil(t, log)

	ctx := context.Background()
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))
}

func TestNewSetsDefault(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", LogLevel: slog.LevelError}

	log := logger.New(cfg)
	assert.Equal(t, log, slog.Default())
}
