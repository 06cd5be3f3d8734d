package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Scenario:          "skirmish",
		SnapshotEvery:     4,
		SpawnsPerRound:    2,
		MaxUnitsPerPlayer: 6,
		OTelEnabled:       true,
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HEXCLASH_SCENARIO", "/tmp/duel.yaml")
	t.Setenv("HEXCLASH_DB_PATH", "/tmp/hexclash.db")
	t.Setenv("HEXCLASH_SNAPSHOT_EVERY", "0")
	t.Setenv("HEXCLASH_RENDER", "true")
	t.Setenv("HEXCLASH_OTEL_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario != "/tmp/duel.yaml" || cfg.DBPath != "/tmp/hexclash.db" {
		t.Fatalf("paths = %q, %q", cfg.Scenario, cfg.DBPath)
	}
	if cfg.SnapshotEvery != 0 || !cfg.Render || cfg.OTelEnabled {
		t.Fatalf("config = %+v", cfg)
	}

	engine := cfg.Game(nil)
	if engine.SnapshotEvery != 0 || engine.SpawnsPerRound != 2 || engine.MaxUnitsPerPlayer != 6 || engine.Recorder != nil {
		t.Fatalf("engine config = %+v", engine)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HEXCLASH_SPAWNS_PER_ROUND", "lots")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}

	t.Setenv("HEXCLASH_SPAWNS_PER_ROUND", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative limit error")
	}
}
