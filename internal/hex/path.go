package hex

import "errors"

// ErrEmptyPath is returned by operations that need at least one cell.
var ErrEmptyPath = errors.New("hex: empty path")

// Path is an ordered list of cells starting at the mover's origin.
// Contiguity is not enforced here; see Contiguous.
type Path struct {
	Cells []Position `json:"cells" msgpack:"cells" yaml:"cells"`
}

// NewPath builds a path from explicit cells.
func NewPath(cells ...Position) Path {
	return Path{Cells: append([]Position(nil), cells...)}
}

// Trace builds a path by walking from start along the given directions.
func Trace(start Position, dirs ...Direction) Path {
	cells := make([]Position, 0, len(dirs)+1)
	cells = append(cells, start)
	cur := start
	for _, d := range dirs {
		cur = cur.Offset(d.Vec())
		cells = append(cells, cur)
	}
	return Path{Cells: cells}
}

// Len returns the number of steps (cells minus one).
func (p Path) Len() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells) - 1
}

// Start returns the first cell.
func (p Path) Start() (Position, error) {
	if len(p.Cells) == 0 {
		return Position{}, ErrEmptyPath
	}
	return p.Cells[0], nil
}

// End returns the last cell.
func (p Path) End() (Position, error) {
	if len(p.Cells) == 0 {
		return Position{}, ErrEmptyPath
	}
	return p.Cells[len(p.Cells)-1], nil
}

// Steps returns the cells entered by the path, excluding the origin.
func (p Path) Steps() []Position {
	if len(p.Cells) < 2 {
		return nil
	}
	return p.Cells[1:]
}

// Contiguous reports whether every consecutive pair of cells is adjacent.
// It returns the index of the first offending cell when it is not.
func (p Path) Contiguous() (bool, int) {
	for i := 1; i < len(p.Cells); i++ {
		if !Adjacent(p.Cells[i-1], p.Cells[i]) {
			return false, i
		}
	}
	return true, -1
}

// Directions returns the direction of each step. ok is false when the
// path is not contiguous.
func (p Path) Directions() (dirs []Direction, ok bool) {
	for i := 1; i < len(p.Cells); i++ {
		d, found := DirectionOf(p.Cells[i].Sub(p.Cells[i-1]))
		if !found {
			return nil, false
		}
		dirs = append(dirs, d)
	}
	return dirs, true
}

// Clone returns a copy that shares no memory with p.
func (p Path) Clone() Path {
	return Path{Cells: append([]Position(nil), p.Cells...)}
}
