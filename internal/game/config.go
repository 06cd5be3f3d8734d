package game

import "github.com/samdwyer/hexclash/internal/history"

// Config holds engine options.
type Config struct {
	// SnapshotEvery takes an extra snapshot every N committed turns. Zero
	// means snapshots are only taken at round boundaries.
	SnapshotEvery int

	// SpawnsPerRound caps the spawn cost a player may place in one spawn
	// phase. Zero means unlimited.
	SpawnsPerRound int

	// MaxUnitsPerPlayer caps live units per player. Zero means unlimited.
	MaxUnitsPerPlayer int

	// Recorder, when set, receives every committed turn and snapshot.
	Recorder history.Recorder
}

// DefaultConfig returns the options used when none are given.
func DefaultConfig() Config {
	return Config{
		SpawnsPerRound:    2,
		MaxUnitsPerPlayer: 6,
	}
}
