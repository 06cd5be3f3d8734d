// Package hex provides axial hex-grid geometry: positions, offsets,
// directions, paths and shape generators. Everything here is pure.
package hex

import "fmt"

// Delta is an axial offset between two positions.
type Delta struct {
	DX int `json:"dx" msgpack:"dx" yaml:"dx"`
	DY int `json:"dy" msgpack:"dy" yaml:"dy"`
}

// Invert returns the opposite offset.
func (d Delta) Invert() Delta {
	return Delta{DX: -d.DX, DY: -d.DY}
}

// Scale multiplies the offset by k.
func (d Delta) Scale(k int) Delta {
	return Delta{DX: d.DX * k, DY: d.DY * k}
}

// Add returns the sum of two offsets.
func (d Delta) Add(o Delta) Delta {
	return Delta{DX: d.DX + o.DX, DY: d.DY + o.DY}
}

// Norm returns the hex distance covered by the offset.
func (d Delta) Norm() int {
	s := -d.DX - d.DY
	return (abs(d.DX) + abs(d.DY) + abs(s)) / 2
}

// Position is a cell coordinate. Coordinates may be negative while
// computing offsets; the grid decides what is in bounds.
type Position struct {
	X int `json:"x" msgpack:"x" yaml:"x"`
	Y int `json:"y" msgpack:"y" yaml:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Offset returns the position moved by d.
func (p Position) Offset(d Delta) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Sub returns the offset leading from o to p.
func (p Position) Sub(o Position) Delta {
	return Delta{DX: p.X - o.X, DY: p.Y - o.Y}
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance returns the hex distance between two positions.
func Distance(a, b Position) int {
	return b.Sub(a).Norm()
}

// Adjacent reports whether a and b are neighbours.
func Adjacent(a, b Position) bool {
	return Distance(a, b) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
