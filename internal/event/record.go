package event

import (
	"errors"
	"fmt"
)

// Record is the tagged envelope a change is stored in. Exactly the field
// matching Kind is set.
type Record struct {
	Kind     Kind          `json:"kind" msgpack:"kind"`
	Moved    *UnitMoved    `json:"moved,omitempty" msgpack:"moved,omitempty"`
	Attacked *UnitAttacked `json:"attacked,omitempty" msgpack:"attacked,omitempty"`
	Ability  *AbilityUsed  `json:"ability,omitempty" msgpack:"ability,omitempty"`
	Spawned  *UnitSpawned  `json:"spawned,omitempty" msgpack:"spawned,omitempty"`
	Ended    *TurnEnded    `json:"ended,omitempty" msgpack:"ended,omitempty"`
}

// Wrap puts a change in its envelope.
func Wrap(c Change) Record {
	switch c := Clone(c).(type) {
	case UnitMoved:
		return Record{Kind: KindUnitMoved, Moved: &c}
	case UnitAttacked:
		return Record{Kind: KindUnitAttacked, Attacked: &c}
	case AbilityUsed:
		return Record{Kind: KindAbilityUsed, Ability: &c}
	case UnitSpawned:
		return Record{Kind: KindUnitSpawned, Spawned: &c}
	case TurnEnded:
		return Record{Kind: KindTurnEnded, Ended: &c}
	default:
		panic(fmt.Sprintf("event: unknown change %T", c))
	}
}

var errEmptyRecord = errors.New("event: record has no payload for its kind")

// Unwrap returns the change held by the envelope.
func (r Record) Unwrap() (Change, error) {
	switch r.Kind {
	case KindUnitMoved:
		if r.Moved == nil {
			return nil, errEmptyRecord
		}
		return *r.Moved, nil
	case KindUnitAttacked:
		if r.Attacked == nil {
			return nil, errEmptyRecord
		}
		return *r.Attacked, nil
	case KindAbilityUsed:
		if r.Ability == nil {
			return nil, errEmptyRecord
		}
		return *r.Ability, nil
	case KindUnitSpawned:
		if r.Spawned == nil {
			return nil, errEmptyRecord
		}
		return *r.Spawned, nil
	case KindTurnEnded:
		if r.Ended == nil {
			return nil, errEmptyRecord
		}
		return *r.Ended, nil
	default:
		return nil, fmt.Errorf("event: unknown record kind %d", r.Kind)
	}
}
