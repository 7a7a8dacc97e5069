package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Races    RaceTableConfig
	Resolver ResolverConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// RaceTableConfig points at the race-name decoder file
type RaceTableConfig struct {
	// Path to a flat JSON or YAML mapping of export race names to display names.
	// An empty path means no lookup table.
	Path string `env:"RACE_TABLE_PATH" envDefault:"race_decoder.json"`
}

// ResolverConfig tunes the sheet service
type ResolverConfig struct {
	BatchConcurrency int `env:"BATCH_CONCURRENCY" envDefault:"4"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "parse env")
	}

	if cfg.Resolver.BatchConcurrency < 1 {
		return nil, dnderr.Validationf("BATCH_CONCURRENCY must be positive, got %d", cfg.Resolver.BatchConcurrency)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
