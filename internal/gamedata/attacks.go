package gamedata

import (
	"errors"
	"fmt"
)

// MaxAttackEffects bounds the secondary effects an attack may carry.
const MaxAttackEffects = 3

// TargetFilter restricts who an attack or ability may be aimed at,
// relative to the acting unit's owner.
type TargetFilter string

const (
	TargetEnemy TargetFilter = "enemy"
	TargetAlly  TargetFilter = "ally"
	TargetAny   TargetFilter = "any"
)

// Allows reports whether a unit owned by targetOwner passes the filter
// when the actor is owned by actorOwner.
func (f TargetFilter) Allows(actorOwner, targetOwner uint32) bool {
	switch f {
	case TargetEnemy:
		return actorOwner != targetOwner
	case TargetAlly:
		return actorOwner == targetOwner
	case TargetAny:
		return true
	default:
		return false
	}
}

// AoePattern is the shape of cells an attack affects around its target.
type AoePattern string

const (
	AoeSingle AoePattern = "single" // the target cell only
	AoeSides  AoePattern = "sides"  // target plus both flanks
	AoeRadius AoePattern = "radius" // everything within Size of the target except the attacker
	AoeLine   AoePattern = "line"   // target plus Size cells behind it
	AoeCone   AoePattern = "cone"   // target plus a Size-long wedge from the attacker
)

// DamageProfile splits an attack's physical damage into components.
type DamageProfile struct {
	Pierce int `json:"pierce"`
	Blunt  int `json:"blunt"`
	Slash  int `json:"slash"`
}

// Total returns the sum of all components.
func (p DamageProfile) Total() int {
	return p.Pierce + p.Blunt + p.Slash
}

// AttackRange is an annulus of hex distances from the attacker.
type AttackRange struct {
	Inner int `json:"inner"`
	Outer int `json:"outer"`
}

// Contains reports whether distance d lies within the annulus.
func (r AttackRange) Contains(d int) bool {
	return d >= r.Inner && d <= r.Outer
}

// Aoe describes an attack's area of effect.
type Aoe struct {
	Pattern AoePattern `json:"pattern"`
	Size    int        `json:"size,omitempty"`
}

// EffectDef is a secondary effect carried by an attack.
type EffectDef struct {
	Kind     string `json:"kind"`
	Power    int    `json:"power,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// AttackDef defines an attack loaded from JSON.
type AttackDef struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	BaseDamage int           `json:"baseDamage"` // negative heals
	Profile    DamageProfile `json:"profile"`
	Range      AttackRange   `json:"range"`
	Aoe        Aoe           `json:"aoe"`
	Effects    []EffectDef   `json:"effects,omitempty"`
	Target     TargetFilter  `json:"target"`
}

// IsHeal reports whether the attack restores health.
func (a *AttackDef) IsHeal() bool {
	return a.BaseDamage < 0
}

// Validate checks the attack definition is coherent.
func (a *AttackDef) Validate() error {
	if a.ID == "" {
		return errors.New("attack id is required")
	}
	if a.Range.Inner < 0 || a.Range.Outer < a.Range.Inner {
		return fmt.Errorf("attack %s: invalid range %d..%d", a.ID, a.Range.Inner, a.Range.Outer)
	}
	if a.Profile.Pierce < 0 || a.Profile.Blunt < 0 || a.Profile.Slash < 0 {
		return fmt.Errorf("attack %s: negative damage component", a.ID)
	}
	if len(a.Effects) > MaxAttackEffects {
		return fmt.Errorf("attack %s: %d effects exceeds limit of %d", a.ID, len(a.Effects), MaxAttackEffects)
	}
	switch a.Target {
	case TargetEnemy, TargetAlly, TargetAny:
	default:
		return fmt.Errorf("attack %s: unknown target filter %q", a.ID, a.Target)
	}
	switch a.Aoe.Pattern {
	case AoeSingle, AoeSides:
	case AoeRadius, AoeLine, AoeCone:
		if a.Aoe.Size <= 0 {
			return fmt.Errorf("attack %s: %s pattern needs a positive size", a.ID, a.Aoe.Pattern)
		}
	default:
		return fmt.Errorf("attack %s: unknown aoe pattern %q", a.ID, a.Aoe.Pattern)
	}
	return nil
}

// AttacksFile represents the structure of attacks.json.
type AttacksFile struct {
	Attacks []AttackDef `json:"attacks"`
}

// Validate checks every attack and rejects duplicate IDs.
func (f *AttacksFile) Validate() error {
	seen := make(map[string]bool, len(f.Attacks))
	for i := range f.Attacks {
		if err := f.Attacks[i].Validate(); err != nil {
			return err
		}
		if seen[f.Attacks[i].ID] {
			return fmt.Errorf("duplicate attack id %q", f.Attacks[i].ID)
		}
		seen[f.Attacks[i].ID] = true
	}
	return nil
}

// LoadAttacks loads attack definitions from the embedded attacks.json file.
func LoadAttacks() ([]AttackDef, error) {
	file, err := Load[AttacksFile]("attacks.json")
	if err != nil {
		return nil, err
	}
	return file.Attacks, nil
}
