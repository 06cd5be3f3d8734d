package game

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/telemetry"
	"github.com/samdwyer/hexclash/internal/turn"
)

// apply performs a resolved change and any state transition it triggers.
// It is shared by live play and replay, so it reads nothing but the change
// and current state. A change that does not fit the state is a defect and
// panics.
func (g *Game) apply(ctx context.Context, c event.Change) {
	g.current = append(g.current, event.Clone(c))

	switch c := c.(type) {
	case event.UnitMoved:
		u := g.mustUnit(c.Unit)
		end, err := c.Path.End()
		if err != nil {
			panic("game: move without a path")
		}
		g.grid.MoveOccupancy(u.Position, end)
		g.roster.SetPosition(u.ID, end)
		g.spend(u, entity.ActionMove)

	case event.UnitAttacked:
		g.spend(g.mustUnit(c.Attacker), entity.ActionAttack)
		g.applyDeltas(c.Deltas)

	case event.AbilityUsed:
		g.spend(g.mustUnit(c.Unit), entity.ActionAbility)
		g.applyDeltas(c.Deltas)

	case event.UnitSpawned:
		g.roster.Insert(c.Unit)
		g.grid.SetOccupancy(c.Unit.Position, c.Unit.ID)
		if c.Unit.ID >= g.nextUnitID {
			g.nextUnitID = c.Unit.ID + 1
		}

	case event.TurnEnded:
		g.endTurn(ctx)

	default:
		panic(fmt.Sprintf("game: unknown change %T", c))
	}
}

func (g *Game) mustUnit(id entity.UnitID) entity.Unit {
	u, ok := g.roster.Get(id)
	if !ok {
		panic("game: change refers to missing unit " + id.String())
	}
	return u
}

func (g *Game) spend(u entity.Unit, kind entity.ActionKind) {
	left, ok := u.Actions.Spend(kind)
	if !ok {
		panic(fmt.Sprintf("game: %v cannot pay for %s", u.ID, kind))
	}
	g.roster.SetActions(u.ID, left)
}

// applyDeltas writes realized health and removes the dead from roster,
// grid and queue together.
func (g *Game) applyDeltas(deltas []event.HealthDelta) {
	for _, d := range deltas {
		if !d.Killed {
			g.roster.SetHealth(d.Unit, d.After)
			continue
		}
		g.removeUnit(d.Unit)
	}
}

func (g *Game) removeUnit(id entity.UnitID) {
	u := g.mustUnit(id)
	g.grid.Vacate(u.Position)
	g.roster.Remove(id)
	g.queue.Remove(id)
}

// endTurn runs after a TurnEnded change. In the spawn phase it waits for
// every player; otherwise it commits the turn and moves on.
func (g *Game) endTurn(ctx context.Context) {
	if g.phase == turn.PhaseSpawn {
		for _, p := range g.players {
			if !g.endedSpawn(p.ID) {
				return
			}
		}
		g.commit(ctx)
		g.buildQueue()
		g.advance(ctx)
		return
	}

	g.commit(ctx)
	g.advance(ctx)
}

// commit appends the turn in progress to history.
func (g *Game) commit(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.turn_end")
	defer span.End()

	t := history.Turn{
		Round:   g.round,
		Number:  g.turnNumber,
		Phase:   g.phase,
		Unit:    g.active,
		Changes: g.current,
	}
	g.history.AppendTurn(t)

	span.SetAttributes(
		attribute.Int("round", t.Round),
		attribute.Int("turn", t.Number),
		attribute.String("phase", t.Phase.String()),
		attribute.Int("changes", len(t.Changes)),
	)

	if rec := g.cfg.Recorder; rec != nil {
		if err := rec.RecordTurn(ctx, g.ID(), t); err != nil {
			telemetry.Fail(span, err)
			log.Printf("Warning: failed to record turn %d of game %s: %v", t.Number, g.ID(), err)
		}
	}

	g.turnNumber++
	g.current = nil
}

// buildQueue orders the whole live roster for the round.
func (g *Game) buildQueue() {
	units := g.roster.Units()
	entries := make([]turn.Entry, len(units))
	for i, u := range units {
		entries[i] = turn.Entry{ID: u.ID, Speed: u.EffectiveSpeed()}
	}
	g.queue.Build(entries)
}

// advance hands the turn to the next queued unit, or closes the round
// when the queue is exhausted.
func (g *Game) advance(ctx context.Context) {
	next, ok := g.queue.PopFront()
	if !ok {
		g.round++
		g.phase = turn.PhaseSpawn
		g.active, g.activeOwner, g.hasActive = 0, 0, false
		g.takeSnapshot(ctx)
		return
	}

	u := g.mustUnit(next)
	g.phase = turn.PhaseUnitTurn
	g.active, g.activeOwner, g.hasActive = u.ID, u.Owner, true
	g.roster.ResetActions(u.ID)

	if n := g.cfg.SnapshotEvery; n > 0 && (g.turnNumber-1)%n == 0 {
		g.takeSnapshot(ctx)
	}
}
