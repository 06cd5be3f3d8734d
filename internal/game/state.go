package game

import (
	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/turn"
	"github.com/samdwyer/hexclash/internal/world"
)

// View is a read-only copy of the game for observers. It is not updated
// by later proposals; take a new one after each change.
type View struct {
	ID        string
	Round     int
	Turn      int
	Phase     turn.Phase
	Active    entity.UnitID
	HasActive bool
	Players   []entity.Player
	Units     []entity.Unit
	Queue     []entity.UnitID
	Board     world.GridState
}

// View returns a copy of the observable state.
func (g *Game) View() View {
	return View{
		ID:        g.ID(),
		Round:     g.round,
		Turn:      g.turnNumber,
		Phase:     g.phase,
		Active:    g.active,
		HasActive: g.hasActive,
		Players:   g.Players(),
		Units:     g.roster.Units(),
		Queue:     g.queue.IDs(),
		Board:     g.grid.State(),
	}
}

// Units returns every live unit ordered by id.
func (g *Game) Units() []entity.Unit {
	return g.roster.Units()
}

// Unit returns one live unit.
func (g *Game) Unit(id entity.UnitID) (entity.Unit, bool) {
	return g.roster.Get(id)
}

// Queue returns the remaining turn order of the round.
func (g *Game) Queue() []entity.UnitID {
	return g.queue.IDs()
}

// TerrainAt returns the terrain of a cell.
func (g *Game) TerrainAt(pos hex.Position) (world.Terrain, bool) {
	return g.grid.TerrainAt(pos)
}

// OccupantAt returns the unit standing on a cell.
func (g *Game) OccupantAt(pos hex.Position) (entity.UnitID, bool) {
	return g.grid.OccupantAt(pos)
}

// Currents lists the board's water-current cells.
func (g *Game) Currents() []world.CurrentCell {
	return g.grid.Currents()
}

// PendingChanges returns the changes of the turn in progress.
func (g *Game) PendingChanges() []event.Change {
	return event.CloneAll(g.current)
}

// Turns returns every committed turn.
func (g *Game) Turns() []history.Turn {
	return g.history.Turns()
}

// Snapshots returns every snapshot taken so far.
func (g *Game) Snapshots() []history.Snapshot {
	return g.history.Snapshots()
}
