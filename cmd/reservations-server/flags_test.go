package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/room-reservations-go/reservations/shell/config"
)

func Test_ApplyFlags(t *testing.T) {
	base := config.Config{
		HTTPAddr:    ":8080",
		AdapterType: config.AdapterPGXPool,
		LogLevel:    slog.LevelInfo,
		EventsTable: "events",
	}

	t.Run("without flags the config is kept", func(t *testing.T) {
		cfg, err := applyFlags(base, nil)

		require.NoError(t, err)
		assert.Equal(t, base, cfg)
	})

	t.Run("flags override", func(t *testing.T) {
		cfg, err := applyFlags(base, []string{"-addr", ":9090", "-adapter", "memory", "-log-level", "debug"})

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
		assert.Equal(t, config.AdapterMemory, cfg.AdapterType)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "events", cfg.EventsTable)
	})

	t.Run("invalid adapter", func(t *testing.T) {
		_, err := applyFlags(base, []string{"-adapter", "mongo"})

		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}
