package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/telemetry"
	"github.com/samdwyer/hexclash/internal/turn"
	"github.com/samdwyer/hexclash/internal/world"
)

// Snapshot returns a full copy of the game state between turns. Changes
// of a turn still in progress are not included; see PendingChanges.
func (g *Game) Snapshot() history.Snapshot {
	return history.Snapshot{
		Round:      g.round,
		NextTurn:   g.turnNumber,
		Phase:      g.phase,
		Active:     g.active,
		HasActive:  g.hasActive,
		Players:    g.Players(),
		Units:      g.roster.Units(),
		Grid:       g.grid.State(),
		Queue:      g.queue.IDs(),
		NextUnitID: g.nextUnitID,
	}
}

// takeSnapshot appends a snapshot to history and hands it to the recorder.
func (g *Game) takeSnapshot(ctx context.Context) {
	tracer := telemetry.Tracer("history")
	ctx, span := tracer.Start(ctx, "history.snapshot")
	defer span.End()

	snap := g.Snapshot()
	g.history.AppendSnapshot(snap)

	span.SetAttributes(
		attribute.Int("round", snap.Round),
		attribute.Int("next_turn", snap.NextTurn),
		attribute.Int("units", len(snap.Units)),
	)

	if rec := g.cfg.Recorder; rec != nil {
		if err := rec.RecordSnapshot(ctx, g.ID(), snap); err != nil {
			telemetry.Fail(span, err)
			log.Printf("Warning: failed to record snapshot of game %s at turn %d: %v", g.ID(), snap.NextTurn, err)
		}
	}
}

// Restore rebuilds a game from a snapshot. The restored game's history
// starts with that snapshot. id may be empty to allocate a new one.
func Restore(cfg Config, catalog *gamedata.Catalog, id string, snap history.Snapshot) (*Game, error) {
	if catalog == nil {
		return nil, errors.New("game: catalog is required")
	}
	gid := uuid.New()
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("game: invalid id %q: %w", id, err)
		}
		gid = parsed
	}

	g := &Game{
		id:      gid,
		cfg:     cfg,
		catalog: catalog,
		history: history.NewStore(),
	}
	if err := g.load(snap); err != nil {
		return nil, err
	}
	g.history.AppendSnapshot(snap)
	return g, nil
}

// load replaces the live state with a snapshot's.
func (g *Game) load(snap history.Snapshot) error {
	if len(snap.Players) == 0 {
		return errors.New("game: snapshot has no players")
	}
	grid, err := world.GridFromState(snap.Grid)
	if err != nil {
		return fmt.Errorf("game: snapshot grid: %w", err)
	}
	roster := entity.NewRoster()
	for _, u := range snap.Units {
		if roster.Contains(u.ID) {
			return fmt.Errorf("game: snapshot has unit %v twice", u.ID)
		}
		roster.Insert(u)
	}

	g.players = append([]entity.Player(nil), snap.Players...)
	g.roster = roster
	g.grid = grid
	g.queue = turn.FromIDs(snap.Queue)
	g.round = snap.Round
	g.turnNumber = snap.NextTurn
	g.phase = snap.Phase
	g.active, g.hasActive = snap.Active, snap.HasActive
	g.activeOwner = 0
	if u, ok := roster.Get(snap.Active); ok && snap.HasActive {
		g.activeOwner = u.Owner
	}
	g.nextUnitID = snap.NextUnitID
	g.current = nil

	if err := g.CheckInvariants(); err != nil {
		return fmt.Errorf("game: snapshot is inconsistent: %w", err)
	}
	return nil
}

// ReplayTurns applies committed turns in order. The first turn must be the
// one the game is waiting for, and each must commit under its own number.
func (g *Game) ReplayTurns(ctx context.Context, turns []history.Turn) error {
	for _, t := range turns {
		if t.Number != g.turnNumber {
			return fmt.Errorf("game: replay expected turn %d, got %d", g.turnNumber, t.Number)
		}
		if err := g.ReplayChanges(ctx, t.Changes); err != nil {
			return fmt.Errorf("game: replay turn %d: %w", t.Number, err)
		}
		if g.turnNumber != t.Number+1 {
			return fmt.Errorf("game: replayed turn %d did not commit", t.Number)
		}
	}
	return nil
}

// ReplayChanges applies resolved changes without re-validating them as
// proposals. Each is checked against the state first so a corrupt log
// returns an error instead of breaking the game.
func (g *Game) ReplayChanges(ctx context.Context, changes []event.Change) error {
	for i, c := range changes {
		if err := g.fits(c); err != nil {
			return fmt.Errorf("change %d (%s): %w", i, c.Kind(), err)
		}
		g.apply(ctx, c)
	}
	return nil
}

// fits checks that a change can be applied to the current state.
func (g *Game) fits(c event.Change) error {
	switch c := c.(type) {
	case event.UnitMoved:
		u, ok := g.roster.Get(c.Unit)
		if !ok {
			return fmt.Errorf("unit %v is not alive", c.Unit)
		}
		start, err := c.Path.Start()
		if err != nil {
			return err
		}
		end, _ := c.Path.End()
		if start != u.Position {
			return fmt.Errorf("path starts at %v, unit is at %v", start, u.Position)
		}
		if !g.grid.InBounds(end) {
			return fmt.Errorf("destination %v is off the board", end)
		}
		if id, taken := g.grid.OccupantAt(end); taken && id != c.Unit {
			return fmt.Errorf("destination %v is held by %v", end, id)
		}
		if !u.Actions.Can(entity.ActionMove) {
			return fmt.Errorf("%v has no move left", c.Unit)
		}
	case event.UnitAttacked:
		if err := g.fitsDeltas(c.Attacker, entity.ActionAttack, c.Deltas); err != nil {
			return err
		}
	case event.AbilityUsed:
		if err := g.fitsDeltas(c.Unit, entity.ActionAbility, c.Deltas); err != nil {
			return err
		}
	case event.UnitSpawned:
		if g.roster.Contains(c.Unit.ID) {
			return fmt.Errorf("unit %v already exists", c.Unit.ID)
		}
		if !g.grid.InBounds(c.Unit.Position) {
			return fmt.Errorf("spawn at %v is off the board", c.Unit.Position)
		}
		if id, taken := g.grid.OccupantAt(c.Unit.Position); taken {
			return fmt.Errorf("spawn at %v is held by %v", c.Unit.Position, id)
		}
	case event.TurnEnded:
		if c.Round != g.round || c.Turn != g.turnNumber {
			return fmt.Errorf("turn end for round %d turn %d, game is at round %d turn %d", c.Round, c.Turn, g.round, g.turnNumber)
		}
	default:
		return fmt.Errorf("unknown change %T", c)
	}
	return nil
}

func (g *Game) fitsDeltas(actor entity.UnitID, kind entity.ActionKind, deltas []event.HealthDelta) error {
	u, ok := g.roster.Get(actor)
	if !ok {
		return fmt.Errorf("unit %v is not alive", actor)
	}
	if !u.Actions.Can(kind) {
		return fmt.Errorf("%v has no %s left", actor, kind)
	}
	seen := make(map[entity.UnitID]bool, len(deltas))
	for _, d := range deltas {
		if !g.roster.Contains(d.Unit) || seen[d.Unit] {
			return fmt.Errorf("delta for unit %v does not apply", d.Unit)
		}
		seen[d.Unit] = true
	}
	return nil
}

// Replay restores snap and replays turns after it, then any changes of a
// turn still in progress.
func Replay(ctx context.Context, cfg Config, catalog *gamedata.Catalog, id string, snap history.Snapshot, turns []history.Turn, pending []event.Change) (*Game, error) {
	g, err := Restore(cfg, catalog, id, snap)
	if err != nil {
		return nil, err
	}
	if err := g.ReplayTurns(ctx, turns); err != nil {
		return nil, err
	}
	if err := g.ReplayChanges(ctx, pending); err != nil {
		return nil, fmt.Errorf("game: replay pending turn: %w", err)
	}
	return g, nil
}

// RollbackTo returns the game to the start of round, discarding every
// later turn and snapshot. A recorder implementing history.Truncater is
// truncated too.
func (g *Game) RollbackTo(ctx context.Context, round int) error {
	snap, ok := g.history.SnapshotForRound(round)
	if !ok {
		return fmt.Errorf("game: no snapshot for round %d", round)
	}
	if err := g.load(snap); err != nil {
		return err
	}
	g.history.Truncate(snap.NextTurn)

	if t, ok := g.cfg.Recorder.(history.Truncater); ok {
		if err := t.Truncate(ctx, g.ID(), snap.NextTurn); err != nil {
			log.Printf("Warning: failed to truncate recorded history of game %s: %v", g.ID(), err)
		}
	}
	return nil
}

// CheckInvariants verifies that roster, grid and queue agree. It returns
// the first violation found.
func (g *Game) CheckInvariants() error {
	for _, u := range g.roster.Units() {
		if u.Health <= 0 {
			return fmt.Errorf("unit %v is in the roster with %d health", u.ID, u.Health)
		}
		id, ok := g.grid.OccupantAt(u.Position)
		if !ok || id != u.ID {
			return fmt.Errorf("unit %v at %v is not the occupant of its cell", u.ID, u.Position)
		}
		if u.ID >= g.nextUnitID {
			return fmt.Errorf("unit %v is not below the next id %v", u.ID, g.nextUnitID)
		}
	}
	for _, o := range g.grid.Occupied() {
		u, ok := g.roster.Get(o.Unit)
		if !ok {
			return fmt.Errorf("cell %v is held by missing unit %v", o.Position, o.Unit)
		}
		if u.Position != o.Position {
			return fmt.Errorf("cell %v is held by %v, which is at %v", o.Position, o.Unit, u.Position)
		}
	}
	seen := make(map[entity.UnitID]bool)
	for _, id := range g.queue.IDs() {
		if seen[id] {
			return fmt.Errorf("unit %v is queued twice", id)
		}
		seen[id] = true
		if !g.roster.Contains(id) {
			return fmt.Errorf("queued unit %v is not alive", id)
		}
	}
	if g.phase == turn.PhaseUnitTurn && !g.hasActive {
		return errors.New("unit turn without an acting unit")
	}
	if g.phase == turn.PhaseSpawn && g.hasActive {
		return errors.New("spawn phase with an acting unit")
	}
	return nil
}
