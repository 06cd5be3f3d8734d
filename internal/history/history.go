// Package history keeps the append-only turn log and the sequence of full
// state snapshots of a game, and encodes both for persistence.
package history

import (
	"context"
	"sort"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/turn"
	"github.com/samdwyer/hexclash/internal/world"
)

// Turn is one committed turn: the spawn phase of a round, or one unit's
// turn, and every change resolved during it in resolution order.
type Turn struct {
	Round   int
	Number  int
	Phase   turn.Phase
	Unit    entity.UnitID // acting unit; meaningful when Phase is PhaseUnitTurn
	Changes []event.Change
}

// Clone returns a deep copy.
func (t Turn) Clone() Turn {
	t.Changes = event.CloneAll(t.Changes)
	return t
}

// Snapshot is a full, independently restorable copy of game state taken
// between turns. NextTurn is the number the next committed turn will get.
type Snapshot struct {
	Round      int             `json:"round" msgpack:"round"`
	NextTurn   int             `json:"nextTurn" msgpack:"next_turn"`
	Phase      turn.Phase      `json:"phase" msgpack:"phase"`
	Active     entity.UnitID   `json:"active" msgpack:"active"`
	HasActive  bool            `json:"hasActive" msgpack:"has_active"`
	Players    []entity.Player `json:"players" msgpack:"players"`
	Units      []entity.Unit   `json:"units" msgpack:"units"`
	Grid       world.GridState `json:"grid" msgpack:"grid"`
	Queue      []entity.UnitID `json:"queue" msgpack:"queue"`
	NextUnitID entity.UnitID   `json:"nextUnitId" msgpack:"next_unit_id"`
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	s.Players = append(make([]entity.Player, 0, len(s.Players)), s.Players...)
	units := make([]entity.Unit, len(s.Units))
	for i, u := range s.Units {
		units[i] = u.Clone()
	}
	s.Units = units
	s.Grid = world.GridState{
		Width:     s.Grid.Width,
		Height:    s.Grid.Height,
		Terrain:   append(make([]world.Terrain, 0, len(s.Grid.Terrain)), s.Grid.Terrain...),
		Occupants: append(make([]world.Occupant, 0, len(s.Grid.Occupants)), s.Grid.Occupants...),
	}
	s.Queue = append(make([]entity.UnitID, 0, len(s.Queue)), s.Queue...)
	return s
}

// Recorder receives committed turns and snapshots as they happen, for
// persistence outside the process.
type Recorder interface {
	RecordTurn(ctx context.Context, gameID string, t Turn) error
	RecordSnapshot(ctx context.Context, gameID string, s Snapshot) error
}

// Truncater is implemented by recorders that can discard persisted
// history after a rollback.
type Truncater interface {
	Truncate(ctx context.Context, gameID string, nextTurn int) error
}

// Store is the in-memory history of one game. Everything going in or out
// is copied.
type Store struct {
	turns     []Turn
	snapshots []Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// AppendTurn adds a committed turn. Turn numbers must increase.
func (s *Store) AppendTurn(t Turn) {
	if n := len(s.turns); n > 0 && t.Number <= s.turns[n-1].Number {
		panic("history: turn numbers must increase")
	}
	s.turns = append(s.turns, t.Clone())
}

// AppendSnapshot adds a snapshot.
func (s *Store) AppendSnapshot(snap Snapshot) {
	s.snapshots = append(s.snapshots, snap.Clone())
}

// Turns returns every committed turn.
func (s *Store) Turns() []Turn {
	return s.TurnsSince(0)
}

// TurnsSince returns the committed turns numbered n or later.
func (s *Store) TurnsSince(n int) []Turn {
	i := sort.Search(len(s.turns), func(i int) bool { return s.turns[i].Number >= n })
	out := make([]Turn, 0, len(s.turns)-i)
	for _, t := range s.turns[i:] {
		out = append(out, t.Clone())
	}
	return out
}

// Snapshots returns every snapshot in the order taken.
func (s *Store) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.snapshots))
	for i, snap := range s.snapshots {
		out[i] = snap.Clone()
	}
	return out
}

// LatestSnapshot returns the most recent snapshot.
func (s *Store) LatestSnapshot() (Snapshot, bool) {
	if len(s.snapshots) == 0 {
		return Snapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1].Clone(), true
}

// SnapshotForRound returns the earliest snapshot taken at the start of
// the given round.
func (s *Store) SnapshotForRound(round int) (Snapshot, bool) {
	for _, snap := range s.snapshots {
		if snap.Round == round && snap.Phase == turn.PhaseSpawn {
			return snap.Clone(), true
		}
	}
	return Snapshot{}, false
}

// Truncate drops turns numbered nextTurn or later and snapshots taken
// after them, so the store ends where snap began.
func (s *Store) Truncate(nextTurn int) {
	i := sort.Search(len(s.turns), func(i int) bool { return s.turns[i].Number >= nextTurn })
	s.turns = s.turns[:i]

	kept := s.snapshots[:0]
	for _, snap := range s.snapshots {
		if snap.NextTurn <= nextTurn {
			kept = append(kept, snap)
		}
	}
	s.snapshots = kept
}

// Len returns the number of committed turns.
func (s *Store) Len() int {
	return len(s.turns)
}
