package combat

import (
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
)

// AffectedCells returns the cells an attack from `from` aimed at `target`
// covers, target first. Cells may lie outside the board; callers intersect
// them with occupancy. The attack direction is the neighbour step from
// the attacker that heads most directly at the target.
func AffectedCells(aoe gamedata.Aoe, from, target hex.Position) []hex.Position {
	dir := hex.Toward(from, target)
	cells := []hex.Position{target}

	switch aoe.Pattern {
	case gamedata.AoeSingle:
	case gamedata.AoeSides:
		cells = append(cells,
			target.Offset(dir.Rotate(2).Vec()),
			target.Offset(dir.Rotate(-2).Vec()),
		)
	case gamedata.AoeRadius:
		for _, d := range hex.Disk(aoe.Size) {
			cells = append(cells, target.Offset(d))
		}
	case gamedata.AoeLine:
		for _, d := range hex.Line(dir, aoe.Size) {
			cells = append(cells, target.Offset(d))
		}
	case gamedata.AoeCone:
		for _, d := range hex.Cone(dir, aoe.Size) {
			cells = append(cells, from.Offset(d))
		}
	}

	return dedupe(cells, from, aoe.Pattern != gamedata.AoeSingle)
}

// dedupe drops repeated cells, and the attacker's own cell when
// excludeSelf is set, keeping first-seen order.
func dedupe(cells []hex.Position, self hex.Position, excludeSelf bool) []hex.Position {
	seen := make(map[hex.Position]bool, len(cells))
	out := make([]hex.Position, 0, len(cells))
	for i, c := range cells {
		if seen[c] || (excludeSelf && i > 0 && c == self) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
