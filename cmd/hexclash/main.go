// Package main runs a hexclash scenario: it plays the scripted proposals,
// persists the history when a database is configured, checks that the
// history replays to the same state, and optionally draws the board.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/joho/godotenv"

	"github.com/samdwyer/hexclash/internal/config"
	"github.com/samdwyer/hexclash/internal/game"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/scenario"
	"github.com/samdwyer/hexclash/internal/storage/sqlite"
	"github.com/samdwyer/hexclash/internal/telemetry"
	"github.com/samdwyer/hexclash/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_HEXCLASH_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.OTelEnabled {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	scen, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return err
	}
	grid, err := scen.Grid(ctx)
	if err != nil {
		return err
	}

	var store *sqlite.Store
	var rec history.Recorder
	if cfg.DBPath != "" {
		store, err = sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	g, err := game.New(ctx, cfg.Game(rec), catalog, scen.Participants(), grid)
	if err != nil {
		return err
	}
	log.Printf("Game %s: scenario %q, %dx%d board, %d players", g.ID(), scen.Name, grid.Width(), grid.Height(), len(scen.Players))

	res, err := scenario.Run(ctx, g, scen.Script)
	if err != nil {
		return err
	}
	log.Printf("Script done: %d accepted, %d rejected, %d changes; round %d turn %d (%s)",
		res.Accepted, res.Rejected, len(res.Changes), g.Round(), g.TurnNumber(), g.Phase())

	if err := verifyReplay(ctx, cfg, catalog, g, store); err != nil {
		return err
	}

	if cfg.Render {
		return render(g, catalog)
	}
	return nil
}

// verifyReplay rebuilds the game from its latest snapshot and the turns
// after it, read from store when there is one, and checks that the result
// matches the live game.
func verifyReplay(ctx context.Context, cfg config.Config, catalog *gamedata.Catalog, g *game.Game, store *sqlite.Store) error {
	var (
		snap  history.Snapshot
		turns []history.Turn
	)
	if store != nil {
		var err error
		if snap, err = store.LatestSnapshot(ctx, g.ID()); err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if turns, err = store.LoadTurns(ctx, g.ID(), snap.NextTurn); err != nil {
			return fmt.Errorf("load turns: %w", err)
		}
	} else {
		snaps := g.Snapshots()
		snap = snaps[len(snaps)-1]
		for _, t := range g.Turns() {
			if t.Number >= snap.NextTurn {
				turns = append(turns, t)
			}
		}
	}

	replayed, err := game.Replay(ctx, cfg.Game(nil), catalog, g.ID(), snap, turns, g.PendingChanges())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if !reflect.DeepEqual(replayed.Snapshot().Clone(), g.Snapshot().Clone()) {
		return errors.New("replayed game diverged from the live game")
	}
	log.Printf("Replay verified from round %d turn %d (%d turns, %d pending changes)",
		snap.Round, snap.NextTurn, len(turns), len(g.PendingChanges()))
	return nil
}

func render(g *game.Game, catalog *gamedata.Catalog) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, catalog)
	draw := func() { renderer.Render(g.View()) }
	draw()
	screen.WaitKey(draw)
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_HEXCLASH_API_KEY")
	dataset := os.Getenv("HONEYCOMB_HEXCLASH_DATASET")
	if dataset == "" {
		dataset = "hexclash" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
