// Package world provides the board: per-cell terrain, unit occupancy and
// seeded board generation.
package world

import "github.com/samdwyer/hexclash/internal/hex"

// TerrainKind is the closed set of terrain variants.
type TerrainKind uint8

const (
	// TerrainGround is open, walkable ground.
	TerrainGround TerrainKind = iota
	// TerrainVoid is an impassable hole in the board.
	TerrainVoid
	// TerrainWaterStill is slow, walkable water.
	TerrainWaterStill
	// TerrainWaterCurrent is walkable water that pushes standing units.
	TerrainWaterCurrent
)

// String returns a human-readable terrain name.
func (k TerrainKind) String() string {
	switch k {
	case TerrainGround:
		return "ground"
	case TerrainVoid:
		return "void"
	case TerrainWaterStill:
		return "water"
	case TerrainWaterCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// Terrain is the terrain of one cell. Current is only meaningful for
// TerrainWaterCurrent and holds the push applied to a standing unit.
// The zero value is ground.
type Terrain struct {
	Kind    TerrainKind `json:"kind" msgpack:"kind"`
	Current hex.Delta   `json:"current" msgpack:"current"`
}

// Ground returns open ground.
func Ground() Terrain { return Terrain{Kind: TerrainGround} }

// Void returns an impassable cell.
func Void() Terrain { return Terrain{Kind: TerrainVoid} }

// StillWater returns still water.
func StillWater() Terrain { return Terrain{Kind: TerrainWaterStill} }

// Current returns flowing water pushing along push.
func Current(push hex.Delta) Terrain {
	return Terrain{Kind: TerrainWaterCurrent, Current: push}
}

// Walkable returns true if a unit may enter or stand on the cell.
func (t Terrain) Walkable() bool {
	return t.Kind != TerrainVoid
}

// Cost returns the movement cost of entering the cell. Unwalkable cells
// report 0; check Walkable first.
func (t Terrain) Cost() int {
	switch t.Kind {
	case TerrainGround:
		return 1
	case TerrainWaterStill, TerrainWaterCurrent:
		return 2
	default:
		return 0
	}
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	switch t.Kind {
	case TerrainGround:
		return '.'
	case TerrainVoid:
		return ' '
	case TerrainWaterStill:
		return '~'
	case TerrainWaterCurrent:
		return '≈'
	default:
		return '?'
	}
}
