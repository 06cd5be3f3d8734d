package world

import (
	"errors"
	"fmt"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/hex"
)

// Grid is a flat spatial index over a fixed width x height board. Each
// cell holds one terrain value and at most one occupying unit, stored at
// the dense offset y*width+x.
//
// Queries outside the board report ok=false. Mutations outside the board,
// or ones that would stack two units on a cell, panic: validation must
// have ruled them out before they are reached.
type Grid struct {
	width, height int
	terrain       []Terrain
	occupants     []occupant
}

type occupant struct {
	id  entity.UnitID
	set bool
}

// NewGrid creates a board of open ground.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:     width,
		height:    height,
		terrain:   make([]Terrain, width*height),
		occupants: make([]occupant, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether pos lies on the board.
func (g *Grid) InBounds(pos hex.Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

func (g *Grid) offset(pos hex.Position) (int, bool) {
	if !g.InBounds(pos) {
		return 0, false
	}
	return pos.Y*g.width + pos.X, true
}

func (g *Grid) mustOffset(pos hex.Position) int {
	i, ok := g.offset(pos)
	if !ok {
		panic(fmt.Sprintf("world: %v outside %dx%d grid", pos, g.width, g.height))
	}
	return i
}

// TerrainAt returns the terrain at pos.
func (g *Grid) TerrainAt(pos hex.Position) (Terrain, bool) {
	i, ok := g.offset(pos)
	if !ok {
		return Terrain{}, false
	}
	return g.terrain[i], true
}

// SetTerrain replaces the terrain at pos.
func (g *Grid) SetTerrain(pos hex.Position, t Terrain) {
	g.terrain[g.mustOffset(pos)] = t
}

// Walkable returns true if pos is on the board and its terrain can be entered.
func (g *Grid) Walkable(pos hex.Position) bool {
	t, ok := g.TerrainAt(pos)
	return ok && t.Walkable()
}

// Cost returns the movement cost of entering pos.
func (g *Grid) Cost(pos hex.Position) (int, bool) {
	t, ok := g.TerrainAt(pos)
	if !ok || !t.Walkable() {
		return 0, false
	}
	return t.Cost(), true
}

// OccupantAt returns the unit standing on pos.
func (g *Grid) OccupantAt(pos hex.Position) (entity.UnitID, bool) {
	i, ok := g.offset(pos)
	if !ok {
		return 0, false
	}
	o := g.occupants[i]
	return o.id, o.set
}

// SetOccupancy places id on pos. Placing a unit on a cell held by a
// different unit panics.
func (g *Grid) SetOccupancy(pos hex.Position, id entity.UnitID) {
	i := g.mustOffset(pos)
	if o := g.occupants[i]; o.set && o.id != id {
		panic(fmt.Sprintf("world: %v already occupied by %v", pos, o.id))
	}
	g.occupants[i] = occupant{id: id, set: true}
}

// Vacate clears the occupancy of pos.
func (g *Grid) Vacate(pos hex.Position) {
	g.occupants[g.mustOffset(pos)] = occupant{}
}

// MoveOccupancy moves whoever stands on from to to. The destination must
// be vacant or already hold the same unit.
func (g *Grid) MoveOccupancy(from, to hex.Position) {
	fi, ti := g.mustOffset(from), g.mustOffset(to)
	src := g.occupants[fi]
	if !src.set {
		panic(fmt.Sprintf("world: move from vacant cell %v", from))
	}
	if dst := g.occupants[ti]; dst.set && dst.id != src.id {
		panic(fmt.Sprintf("world: move onto %v held by %v", to, dst.id))
	}
	g.occupants[fi] = occupant{}
	g.occupants[ti] = src
}

// CurrentCell is a water-current cell and the push it applies.
type CurrentCell struct {
	Position hex.Position
	Push     hex.Delta
}

// Currents lists every current cell in offset order.
func (g *Grid) Currents() []CurrentCell {
	var out []CurrentCell
	for i, t := range g.terrain {
		if t.Kind == TerrainWaterCurrent {
			out = append(out, CurrentCell{Position: g.position(i), Push: t.Current})
		}
	}
	return out
}

// Occupant is one occupied cell.
type Occupant struct {
	Position hex.Position  `json:"position" msgpack:"position"`
	Unit     entity.UnitID `json:"unit" msgpack:"unit"`
}

// Occupied lists every occupied cell in offset order.
func (g *Grid) Occupied() []Occupant {
	out := make([]Occupant, 0)
	for i, o := range g.occupants {
		if o.set {
			out = append(out, Occupant{Position: g.position(i), Unit: o.id})
		}
	}
	return out
}

func (g *Grid) position(i int) hex.Position {
	return hex.Pos(i%g.width, i/g.width)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:     g.width,
		height:    g.height,
		terrain:   append([]Terrain(nil), g.terrain...),
		occupants: append([]occupant(nil), g.occupants...),
	}
}

// GridState is an exported, self-contained copy of a grid used by
// snapshots.
type GridState struct {
	Width     int        `json:"width" msgpack:"width"`
	Height    int        `json:"height" msgpack:"height"`
	Terrain   []Terrain  `json:"terrain" msgpack:"terrain"`
	Occupants []Occupant `json:"occupants" msgpack:"occupants"`
}

// State returns a copy of the grid as plain data.
func (g *Grid) State() GridState {
	terrain := make([]Terrain, len(g.terrain))
	copy(terrain, g.terrain)
	return GridState{
		Width:     g.width,
		Height:    g.height,
		Terrain:   terrain,
		Occupants: g.Occupied(),
	}
}

// GridFromState rebuilds a grid from a snapshot copy.
func GridFromState(s GridState) (*Grid, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", s.Width, s.Height)
	}
	if len(s.Terrain) != s.Width*s.Height {
		return nil, fmt.Errorf("terrain has %d cells, want %d", len(s.Terrain), s.Width*s.Height)
	}
	g := NewGrid(s.Width, s.Height)
	copy(g.terrain, s.Terrain)
	for _, o := range s.Occupants {
		i, ok := g.offset(o.Position)
		if !ok {
			return nil, fmt.Errorf("occupant %v outside grid at %v", o.Unit, o.Position)
		}
		if g.occupants[i].set {
			return nil, errors.New("two occupants share cell " + o.Position.String())
		}
		g.occupants[i] = occupant{id: o.Unit, set: true}
	}
	return g, nil
}
