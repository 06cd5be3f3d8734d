// Package game is the authoritative state engine. A Game owns players,
// units, the board, the turn queue and the round/turn/phase state, and
// changes them only through Propose.
//
// A Game is not safe for concurrent use; callers serialize proposals per
// game. Separate games share nothing.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/turn"
	"github.com/samdwyer/hexclash/internal/world"
)

// Game holds the entire state of one match.
type Game struct {
	id      uuid.UUID
	cfg     Config
	catalog *gamedata.Catalog

	players []entity.Player
	roster  *entity.Roster
	grid    *world.Grid
	queue   *turn.Queue

	round       int
	turnNumber  int // number the turn in progress will be committed as
	phase       turn.Phase
	active      entity.UnitID
	activeOwner entity.PlayerID
	hasActive   bool
	nextUnitID  entity.UnitID

	current []event.Change // changes of the turn in progress
	history *history.Store
}

// New creates a game in the spawn phase of round 1 and takes the initial
// snapshot. The grid must be empty of units; the game keeps its own copy.
func New(ctx context.Context, cfg Config, catalog *gamedata.Catalog, players []entity.Player, grid *world.Grid) (*Game, error) {
	if catalog == nil {
		return nil, errors.New("game: catalog is required")
	}
	if grid == nil {
		return nil, errors.New("game: grid is required")
	}
	if len(players) == 0 {
		return nil, errors.New("game: at least one player is required")
	}
	seen := make(map[entity.PlayerID]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("game: duplicate player %v", p.ID)
		}
		seen[p.ID] = true
	}
	if occ := grid.Occupied(); len(occ) > 0 {
		return nil, fmt.Errorf("game: grid already has %d occupants", len(occ))
	}

	g := &Game{
		id:         uuid.New(),
		cfg:        cfg,
		catalog:    catalog,
		players:    append([]entity.Player(nil), players...),
		roster:     entity.NewRoster(),
		grid:       grid.Clone(),
		queue:      turn.NewQueue(),
		round:      1,
		turnNumber: 1,
		phase:      turn.PhaseSpawn,
		history:    history.NewStore(),
	}
	g.takeSnapshot(ctx)
	return g, nil
}

// ID returns the game's identifier, used to key persisted history.
func (g *Game) ID() string {
	return g.id.String()
}

// Round returns the current round number, starting at 1.
func (g *Game) Round() int { return g.round }

// TurnNumber returns the number of the turn in progress.
func (g *Game) TurnNumber() int { return g.turnNumber }

// Phase returns the current phase.
func (g *Game) Phase() turn.Phase { return g.phase }

// Active returns the unit whose turn it is. ok is false in the spawn phase.
func (g *Game) Active() (id entity.UnitID, ok bool) {
	return g.active, g.hasActive
}

// Players returns the participants.
func (g *Game) Players() []entity.Player {
	return append([]entity.Player(nil), g.players...)
}

func (g *Game) hasPlayer(id entity.PlayerID) bool {
	for _, p := range g.players {
		if p.ID == id {
			return true
		}
	}
	return false
}
