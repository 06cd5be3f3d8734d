// Package event defines resolved changes: the immutable, ordered record of
// what happened in a game. Each change carries enough data to be replayed
// without consulting content tables.
package event

import (
	"fmt"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
)

// Kind tags a change variant.
type Kind uint8

const (
	KindUnitMoved Kind = iota
	KindUnitAttacked
	KindAbilityUsed
	KindUnitSpawned
	KindTurnEnded
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnitMoved:
		return "unit_moved"
	case KindUnitAttacked:
		return "unit_attacked"
	case KindAbilityUsed:
		return "ability_used"
	case KindUnitSpawned:
		return "unit_spawned"
	case KindTurnEnded:
		return "turn_ended"
	default:
		return "unknown"
	}
}

// Change is a resolved change. The set of variants is closed.
type Change interface {
	Kind() Kind
	String() string
	isChange()
}

// HealthDelta is the realized effect of an attack or ability on one unit.
// Amount is signed: negative for damage, positive for healing.
type HealthDelta struct {
	Unit   entity.UnitID `json:"unit" msgpack:"unit"`
	Amount int           `json:"amount" msgpack:"amount"`
	Before int           `json:"before" msgpack:"before"`
	After  int           `json:"after" msgpack:"after"`
	Killed bool          `json:"killed" msgpack:"killed"`
}

// UnitMoved records a unit walking along a path. Path starts at the
// unit's origin.
type UnitMoved struct {
	Unit entity.UnitID `json:"unit" msgpack:"unit"`
	Path hex.Path      `json:"path" msgpack:"path"`
}

// UnitAttacked records an attack and the deltas it realized, nearest
// target first.
type UnitAttacked struct {
	Attacker entity.UnitID        `json:"attacker" msgpack:"attacker"`
	Target   entity.UnitID        `json:"target" msgpack:"target"`
	Attack   string               `json:"attack" msgpack:"attack"`
	Deltas   []HealthDelta        `json:"deltas" msgpack:"deltas"`
	Effects  []gamedata.EffectDef `json:"effects,omitempty" msgpack:"effects,omitempty"`
}

// AbilityUsed records an ability. A nil Target means the unit itself.
type AbilityUsed struct {
	Unit    entity.UnitID  `json:"unit" msgpack:"unit"`
	Ability string         `json:"ability" msgpack:"ability"`
	Target  *entity.UnitID `json:"target,omitempty" msgpack:"target,omitempty"`
	Deltas  []HealthDelta  `json:"deltas" msgpack:"deltas"`
}

// UnitSpawned records a new unit with its full initial state.
type UnitSpawned struct {
	Unit entity.Unit `json:"unit" msgpack:"unit"`
}

// TurnEnded records an end-turn. During the spawn phase each player ends
// the phase separately and HasUnit is false.
type TurnEnded struct {
	Round   int             `json:"round" msgpack:"round"`
	Turn    int             `json:"turn" msgpack:"turn"`
	Player  entity.PlayerID `json:"player" msgpack:"player"`
	Unit    entity.UnitID   `json:"unit" msgpack:"unit"`
	HasUnit bool            `json:"hasUnit" msgpack:"has_unit"`
}

func (UnitMoved) Kind() Kind    { return KindUnitMoved }
func (UnitAttacked) Kind() Kind { return KindUnitAttacked }
func (AbilityUsed) Kind() Kind  { return KindAbilityUsed }
func (UnitSpawned) Kind() Kind  { return KindUnitSpawned }
func (TurnEnded) Kind() Kind    { return KindTurnEnded }

func (UnitMoved) isChange()    {}
func (UnitAttacked) isChange() {}
func (AbilityUsed) isChange()  {}
func (UnitSpawned) isChange()  {}
func (TurnEnded) isChange()    {}

func (c UnitMoved) String() string {
	end, _ := c.Path.End()
	return fmt.Sprintf("%v moved %d steps to %v", c.Unit, c.Path.Len(), end)
}

func (c UnitAttacked) String() string {
	return fmt.Sprintf("%v used %s on %v (%d hit)", c.Attacker, c.Attack, c.Target, len(c.Deltas))
}

func (c AbilityUsed) String() string {
	if c.Target == nil {
		return fmt.Sprintf("%v used %s", c.Unit, c.Ability)
	}
	return fmt.Sprintf("%v used %s on %v", c.Unit, c.Ability, *c.Target)
}

func (c UnitSpawned) String() string {
	return fmt.Sprintf("%v spawned %s %v at %v", c.Unit.Owner, c.Unit.Class, c.Unit.ID, c.Unit.Position)
}

func (c TurnEnded) String() string {
	if c.HasUnit {
		return fmt.Sprintf("round %d turn %d: %v ended", c.Round, c.Turn, c.Unit)
	}
	return fmt.Sprintf("round %d turn %d: %v ended spawn", c.Round, c.Turn, c.Player)
}

// Clone returns a deep copy of c.
func Clone(c Change) Change {
	switch c := c.(type) {
	case UnitMoved:
		c.Path = c.Path.Clone()
		return c
	case UnitAttacked:
		c.Deltas = cloneDeltas(c.Deltas)
		if c.Effects != nil {
			c.Effects = append([]gamedata.EffectDef(nil), c.Effects...)
		}
		return c
	case AbilityUsed:
		if c.Target != nil {
			target := *c.Target
			c.Target = &target
		}
		c.Deltas = cloneDeltas(c.Deltas)
		return c
	case UnitSpawned:
		c.Unit = c.Unit.Clone()
		return c
	case TurnEnded:
		return c
	default:
		panic(fmt.Sprintf("event: unknown change %T", c))
	}
}

// CloneAll deep-copies a change list.
func CloneAll(changes []Change) []Change {
	out := make([]Change, len(changes))
	for i, c := range changes {
		out[i] = Clone(c)
	}
	return out
}

func cloneDeltas(d []HealthDelta) []HealthDelta {
	return append(make([]HealthDelta, 0, len(d)), d...)
}
