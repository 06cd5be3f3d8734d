package hex

// Direction is one of the six hex neighbour directions.
type Direction uint8

const (
	Right Direction = iota
	DownRight
	DownLeft
	Left
	UpLeft
	UpRight
)

// Directions lists all directions in rotation order.
var Directions = [6]Direction{Right, DownRight, DownLeft, Left, UpLeft, UpRight}

// Vec returns the unit offset of the direction.
func (d Direction) Vec() Delta {
	switch d {
	case Right:
		return Delta{DX: 1, DY: 0}
	case DownRight:
		return Delta{DX: 1, DY: -1}
	case DownLeft:
		return Delta{DX: 0, DY: -1}
	case Left:
		return Delta{DX: -1, DY: 0}
	case UpLeft:
		return Delta{DX: -1, DY: 1}
	case UpRight:
		return Delta{DX: 0, DY: 1}
	default:
		panic("hex: invalid direction")
	}
}

// Invert returns the opposite direction.
func (d Direction) Invert() Direction {
	return d.Rotate(3)
}

// Rotate turns the direction by steps sixths of a full turn. Positive
// steps follow rotation order.
func (d Direction) Rotate(steps int) Direction {
	n := (int(d) + steps) % 6
	if n < 0 {
		n += 6
	}
	return Direction(n)
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case DownRight:
		return "down_right"
	case DownLeft:
		return "down_left"
	case Left:
		return "left"
	case UpLeft:
		return "up_left"
	case UpRight:
		return "up_right"
	default:
		return "unknown"
	}
}

// DirectionOf returns the direction whose unit offset equals d.
func DirectionOf(d Delta) (Direction, bool) {
	for _, dir := range Directions {
		if dir.Vec() == d {
			return dir, true
		}
	}
	return 0, false
}

// Toward returns the direction from `from` that gets closest to `to`.
// Ties resolve in rotation order. A zero offset yields Right.
func Toward(from, to Position) Direction {
	best := Right
	bestDist := -1
	for _, dir := range Directions {
		dist := Distance(from.Offset(dir.Vec()), to)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = dir, dist
		}
	}
	return best
}

// Neighbors returns the six positions adjacent to p in rotation order.
func Neighbors(p Position) []Position {
	out := make([]Position, 0, 6)
	for _, dir := range Directions {
		out = append(out, p.Offset(dir.Vec()))
	}
	return out
}
