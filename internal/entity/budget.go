package entity

import (
	"strings"

	"github.com/samdwyer/hexclash/internal/gamedata"
)

// ActionKind is one kind of action point.
type ActionKind uint8

const (
	ActionMove ActionKind = iota
	ActionAttack
	ActionAbility
	ActionMoveOrAttack
	ActionWildcard
	ActionGroup
)

// String returns the content name of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionMoveOrAttack:
		return "move_or_attack"
	case ActionWildcard:
		return "wildcard"
	case ActionGroup:
		return "group"
	default:
		return "unknown"
	}
}

// ActionPoint is one entry of a budget. A group point holds alternatives;
// spending any member spends the whole group.
type ActionPoint struct {
	Kind  ActionKind    `json:"kind" msgpack:"kind"`
	Group []ActionPoint `json:"group,omitempty" msgpack:"group,omitempty"`
}

// covers reports whether spending this point can pay for kind.
// Wildcards are matched separately so they are spent last.
func (p ActionPoint) covers(kind ActionKind) bool {
	switch p.Kind {
	case ActionMoveOrAttack:
		return kind == ActionMove || kind == ActionAttack
	case ActionGroup:
		for _, member := range p.Group {
			if member.covers(kind) || member.Kind == ActionWildcard {
				return true
			}
		}
		return false
	default:
		return p.Kind == kind
	}
}

// Budget is the list of action points a unit may still spend this turn.
type Budget []ActionPoint

// Can reports whether the budget can pay for an action of the given kind.
func (b Budget) Can(kind ActionKind) bool {
	return b.pick(kind) >= 0
}

// Spend returns the budget left after paying for kind, and false when
// nothing can pay for it. The receiver is not modified.
//
// Points are chosen in a fixed order so replays spend the same point:
// an exact match first, then move-or-attack, then a group, then a wildcard.
func (b Budget) Spend(kind ActionKind) (Budget, bool) {
	i := b.pick(kind)
	if i < 0 {
		return b.Clone(), false
	}
	out := make(Budget, 0, len(b)-1)
	for j, p := range b {
		if j != i {
			out = append(out, p.clone())
		}
	}
	return out, true
}

func (b Budget) pick(kind ActionKind) int {
	for i, p := range b {
		if p.Kind == kind && p.Kind != ActionGroup {
			return i
		}
	}
	for i, p := range b {
		if p.Kind == ActionMoveOrAttack && p.covers(kind) {
			return i
		}
	}
	for i, p := range b {
		if p.Kind == ActionGroup && p.covers(kind) {
			return i
		}
	}
	for i, p := range b {
		if p.Kind == ActionWildcard {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (b Budget) Clone() Budget {
	out := make(Budget, len(b))
	for i, p := range b {
		out[i] = p.clone()
	}
	return out
}

// String renders the budget as "move attack [attack|ability]".
func (b Budget) String() string {
	parts := make([]string, len(b))
	for i, p := range b {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// String renders a single point.
func (p ActionPoint) String() string {
	if p.Kind != ActionGroup {
		return p.Kind.String()
	}
	parts := make([]string, len(p.Group))
	for i, member := range p.Group {
		parts[i] = member.String()
	}
	return "[" + strings.Join(parts, "|") + "]"
}

func (p ActionPoint) clone() ActionPoint {
	if p.Group == nil {
		return ActionPoint{Kind: p.Kind}
	}
	group := make([]ActionPoint, len(p.Group))
	for i, member := range p.Group {
		group[i] = member.clone()
	}
	return ActionPoint{Kind: p.Kind, Group: group}
}

// BudgetFromDefs converts a class's action template into a budget.
// Definitions are expected to have been validated on load.
func BudgetFromDefs(defs []gamedata.ActionPointDef) Budget {
	out := make(Budget, 0, len(defs))
	for _, d := range defs {
		out = append(out, pointFromDef(d))
	}
	return out
}

func pointFromDef(d gamedata.ActionPointDef) ActionPoint {
	switch d.Kind {
	case gamedata.ActionMove:
		return ActionPoint{Kind: ActionMove}
	case gamedata.ActionAttack:
		return ActionPoint{Kind: ActionAttack}
	case gamedata.ActionAbility:
		return ActionPoint{Kind: ActionAbility}
	case gamedata.ActionMoveOrAttack:
		return ActionPoint{Kind: ActionMoveOrAttack}
	case gamedata.ActionWildcard:
		return ActionPoint{Kind: ActionWildcard}
	default:
		group := make([]ActionPoint, 0, len(d.Group))
		for _, member := range d.Group {
			group = append(group, pointFromDef(member))
		}
		return ActionPoint{Kind: ActionGroup, Group: group}
	}
}
