package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/telemetry"
	"github.com/samdwyer/hexclash/internal/turn"
)

// Propose submits an action on behalf of a player. On success the
// resolved changes are applied and returned in resolution order. On
// rejection the error wraps one of the Err* kinds and the game is left
// exactly as it was.
func (g *Game) Propose(ctx context.Context, player entity.PlayerID, action Action) ([]event.Change, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.propose")
	defer span.End()

	span.SetAttributes(
		attribute.Int("player", int(player)),
		attribute.String("action", action.Name()),
		attribute.Int("round", g.round),
		attribute.Int("turn", g.turnNumber),
		attribute.String("phase", g.phase.String()),
	)

	changes, err := g.resolve(ctx, player, action)
	if err != nil {
		span.SetAttributes(attribute.String("rejection", KindOf(err).String()))
		telemetry.Fail(span, err)
		return nil, err
	}

	for _, c := range changes {
		g.apply(ctx, c)
	}

	span.SetAttributes(attribute.Int("changes", len(changes)))
	return event.CloneAll(changes), nil
}

// resolve checks legality and preconditions and builds the resulting
// changes. It must not mutate the game.
func (g *Game) resolve(ctx context.Context, player entity.PlayerID, action Action) ([]event.Change, error) {
	if err := g.checkTurn(player, action); err != nil {
		return nil, err
	}

	var (
		c   event.Change
		err error
	)
	switch a := action.(type) {
	case Move:
		c, err = g.resolveMove(a)
	case Attack:
		c, err = g.resolveAttack(ctx, a)
	case Ability:
		c, err = g.resolveAbility(a)
	case Spawn:
		c, err = g.resolveSpawn(player, a)
	case EndTurn:
		c = g.resolveEndTurn(player)
	default:
		return nil, reject(ErrIllegalAction, "unknown action %T", action)
	}
	if err != nil {
		return nil, err
	}
	return []event.Change{c}, nil
}

// checkTurn is the turn legality check. Unit actions need the submitting
// player to own the acting unit; spawning is only allowed in the spawn
// phase, by players who have not yet ended it.
func (g *Game) checkTurn(player entity.PlayerID, action Action) error {
	if !g.hasPlayer(player) {
		return reject(ErrNotYourTurn, "unknown player %v", player)
	}

	switch g.phase {
	case turn.PhaseSpawn:
		switch action.(type) {
		case Spawn, EndTurn:
		default:
			return reject(ErrIllegalAction, "%s not allowed during the spawn phase", action.Name())
		}
		if g.endedSpawn(player) {
			return reject(ErrIllegalAction, "%v already ended the spawn phase", player)
		}
		return nil

	case turn.PhaseUnitTurn:
		if _, ok := action.(Spawn); ok {
			return reject(ErrIllegalAction, "spawn only allowed during the spawn phase")
		}
		if player != g.activeOwner {
			return reject(ErrNotYourTurn, "%v is not owned by %v", g.active, player)
		}
		return nil

	default:
		panic(fmt.Sprintf("game: invalid phase %d", g.phase))
	}
}

// endedSpawn reports whether player has ended the spawn phase in progress.
func (g *Game) endedSpawn(player entity.PlayerID) bool {
	for _, c := range g.current {
		if e, ok := c.(event.TurnEnded); ok && !e.HasUnit && e.Player == player {
			return true
		}
	}
	return false
}

// actor returns the unit whose turn it is.
func (g *Game) actor() (entity.Unit, error) {
	u, ok := g.roster.Get(g.active)
	if !g.hasActive || !ok {
		return entity.Unit{}, reject(ErrInvalidUnit, "acting unit %v is gone", g.active)
	}
	return u, nil
}

func (g *Game) resolveEndTurn(player entity.PlayerID) event.Change {
	return event.TurnEnded{
		Round:   g.round,
		Turn:    g.turnNumber,
		Player:  player,
		Unit:    g.active,
		HasUnit: g.phase == turn.PhaseUnitTurn,
	}
}
