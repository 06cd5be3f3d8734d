// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/hexclash/internal/game"
	"github.com/samdwyer/hexclash/internal/history"
)

// Config holds the settings of one hexclash run.
type Config struct {
	Scenario          string `env:"HEXCLASH_SCENARIO"             envDefault:"skirmish"`
	DBPath            string `env:"HEXCLASH_DB_PATH"`
	SnapshotEvery     int    `env:"HEXCLASH_SNAPSHOT_EVERY"       envDefault:"4"`
	SpawnsPerRound    int    `env:"HEXCLASH_SPAWNS_PER_ROUND"     envDefault:"2"`
	MaxUnitsPerPlayer int    `env:"HEXCLASH_MAX_UNITS_PER_PLAYER" envDefault:"6"`
	Render            bool   `env:"HEXCLASH_RENDER"`
	OTelEnabled       bool   `env:"HEXCLASH_OTEL_ENABLED"         envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot use.
func (c Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("scenario is required")
	}
	if c.SnapshotEvery < 0 || c.SpawnsPerRound < 0 || c.MaxUnitsPerPlayer < 0 {
		return fmt.Errorf("engine limits must not be negative")
	}
	return nil
}

// Game returns the engine options, recording to rec when it is not nil.
func (c Config) Game(rec history.Recorder) game.Config {
	return game.Config{
		SnapshotEvery:     c.SnapshotEvery,
		SpawnsPerRound:    c.SpawnsPerRound,
		MaxUnitsPerPlayer: c.MaxUnitsPerPlayer,
		Recorder:          rec,
	}
}
