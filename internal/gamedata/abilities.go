package gamedata

// =============================================================================
// ABILITIES
// =============================================================================
//
// Abilities are data-driven actions distinct from attacks: they spend the
// ability point of a unit's budget instead of the attack point, and their
// effect is one of a small closed set.
//
// EffectType:
//    - damage: reduces target health by Power (no damage profile, no defense)
//    - heal:   restores target health by Power, capped at max health
//    - none:   a pure signal; spends the point and emits a change
//
// Targeting:
//    - An ability proposed without a target applies to the acting unit itself.
//    - With a target, the target must pass Target relative to the actor's
//      owner and lie within Range of the actor.
//
// JSON Schema:
// ------------
// {
//   "id": "rally",
//   "name": "Rally",
//   "effect": "heal",
//   "target": "ally",
//   "range": {"inner": 0, "outer": 2},
//   "power": 6
// }

import (
	"errors"
	"fmt"
)

// EffectType represents what an ability does.
type EffectType string

const (
	EffectDamage EffectType = "damage"
	EffectHeal   EffectType = "heal"
	EffectNone   EffectType = "none"
)

// AbilityDef defines an ability loaded from JSON.
type AbilityDef struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Effect      EffectType   `json:"effect"`
	Target      TargetFilter `json:"target"`
	Range       AttackRange  `json:"range"`
	Power       int          `json:"power"`
}

// SelfTargetable reports whether the ability may be used on the caster.
func (a *AbilityDef) SelfTargetable() bool {
	return a.Target == TargetAlly || a.Target == TargetAny
}

// Validate checks the ability definition is coherent.
func (a *AbilityDef) Validate() error {
	if a.ID == "" {
		return errors.New("ability id is required")
	}
	switch a.Effect {
	case EffectDamage, EffectHeal, EffectNone:
	default:
		return fmt.Errorf("ability %s: unknown effect %q", a.ID, a.Effect)
	}
	switch a.Target {
	case TargetEnemy, TargetAlly, TargetAny:
	default:
		return fmt.Errorf("ability %s: unknown target filter %q", a.ID, a.Target)
	}
	if a.Range.Inner < 0 || a.Range.Outer < a.Range.Inner {
		return fmt.Errorf("ability %s: invalid range %d..%d", a.ID, a.Range.Inner, a.Range.Outer)
	}
	if a.Power < 0 {
		return fmt.Errorf("ability %s: power must not be negative", a.ID)
	}
	return nil
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities"`
}

// Validate checks every ability and rejects duplicate IDs.
func (f *AbilitiesFile) Validate() error {
	seen := make(map[string]bool, len(f.Abilities))
	for i := range f.Abilities {
		if err := f.Abilities[i].Validate(); err != nil {
			return err
		}
		if seen[f.Abilities[i].ID] {
			return fmt.Errorf("duplicate ability id %q", f.Abilities[i].ID)
		}
		seen[f.Abilities[i].ID] = true
	}
	return nil
}

// LoadAbilities loads ability definitions from the embedded abilities.json file.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	return file.Abilities, nil
}
