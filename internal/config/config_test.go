package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dicecloud-sheet/internal/config"
	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"RACE_TABLE_PATH", "LOG_LEVEL", "BATCH_CONCURRENCY"} {
		// Setenv restores the original value after the test
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "race_decoder.json", cfg.Races.Path)
	assert.Equal(t, 4, cfg.Resolver.BatchConcurrency)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RACE_TABLE_PATH", "/etc/races.yaml")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/races.yaml", cfg.Races.Path)
	assert.Equal(t, 8, cfg.Resolver.BatchConcurrency)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "many"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BATCH_CONCURRENCY", tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, dnderr.IsValidation(err))
		})
	}
}
