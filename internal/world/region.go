package world

import "github.com/samdwyer/hexclash/internal/hex"

// Region is a hex disk of cells, used by the generator to place terrain
// features.
type Region struct {
	Center hex.Position
	Radius int
}

// Contains returns true if the given point is inside the region.
func (r Region) Contains(pos hex.Position) bool {
	return hex.Distance(r.Center, pos) <= r.Radius
}

// Intersects returns true if this region overlaps or touches another.
func (r Region) Intersects(other Region) bool {
	return hex.Distance(r.Center, other.Center) <= r.Radius+other.Radius+1
}

// Cells returns every position in the region, center included.
func (r Region) Cells() []hex.Position {
	disk := hex.Disk(r.Radius)
	out := make([]hex.Position, len(disk))
	for i, d := range disk {
		out[i] = r.Center.Offset(d)
	}
	return out
}
