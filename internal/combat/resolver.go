// Package combat resolves attacks and abilities into health deltas.
// Everything here is a pure function of its inputs: the same attack on the
// same participants always yields the same deltas, which replay relies on.
package combat

import (
	"cmp"
	"context"
	"math"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/telemetry"
)

// Participant is the view of a unit the resolver needs.
type Participant struct {
	ID        entity.UnitID
	Owner     entity.PlayerID
	Health    int
	MaxHealth int
	Defense   float64
	Position  hex.Position
}

// ParticipantOf extracts a participant from unit state.
func ParticipantOf(u entity.Unit) Participant {
	return Participant{
		ID:        u.ID,
		Owner:     u.Owner,
		Health:    u.Health,
		MaxHealth: u.MaxHealth,
		Defense:   u.Defense,
		Position:  u.Position,
	}
}

// defensePerMille quantises defense to an integer in [0,1000] so the rest
// of the computation is integer-only.
func defensePerMille(defense float64) int {
	d := int(math.Round(defense * 1000))
	return min(max(d, 0), 1000)
}

// Damage returns the damage an attack deals to a target with the given
// defense. Pierce ignores half of the defense; blunt and slash are reduced
// by all of it. A damaging attack always deals at least 1. Heals return 0.
func Damage(attack *gamedata.AttackDef, defense float64) int {
	if attack.BaseDamage < 0 {
		return 0
	}
	d := defensePerMille(defense)
	p := attack.Profile
	damage := attack.BaseDamage +
		p.Pierce*(1000-d/2)/1000 +
		p.Blunt*(1000-d)/1000 +
		p.Slash*(1000-d)/1000
	return max(damage, 1)
}

// Strike computes the delta of one attack on one target.
func Strike(attack *gamedata.AttackDef, target Participant) event.HealthDelta {
	if attack.IsHeal() {
		return heal(target, -attack.BaseDamage)
	}
	return hurt(target, Damage(attack, target.Defense))
}

func hurt(target Participant, damage int) event.HealthDelta {
	actual := min(damage, target.Health)
	after := target.Health - actual
	return event.HealthDelta{
		Unit:   target.ID,
		Amount: -actual,
		Before: target.Health,
		After:  after,
		Killed: after <= 0,
	}
}

func heal(target Participant, amount int) event.HealthDelta {
	actual := max(min(amount, target.MaxHealth-target.Health), 0)
	return event.HealthDelta{
		Unit:   target.ID,
		Amount: actual,
		Before: target.Health,
		After:  target.Health + actual,
	}
}

// Order sorts targets nearest to origin first, ties broken by ascending id.
func Order(origin hex.Position, targets []Participant) []Participant {
	out := slices.Clone(targets)
	slices.SortFunc(out, func(a, b Participant) int {
		if c := cmp.Compare(hex.Distance(origin, a.Position), hex.Distance(origin, b.Position)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Resolve applies an attack to every realized target independently and
// returns the deltas in resolution order. Targets are evaluated against
// the state before the attack, so an early kill does not change who else
// is hit.
func Resolve(ctx context.Context, attack *gamedata.AttackDef, attacker Participant, targets []Participant) []event.HealthDelta {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.resolve")
	defer span.End()

	ordered := Order(attacker.Position, targets)
	deltas := make([]event.HealthDelta, 0, len(ordered))
	total, kills := 0, 0
	for _, t := range ordered {
		d := Strike(attack, t)
		deltas = append(deltas, d)
		total += d.Amount
		if d.Killed {
			kills++
		}
	}

	span.SetAttributes(
		attribute.String("attack", attack.ID),
		attribute.Int("attacker", int(attacker.ID)),
		attribute.Int("targets", len(deltas)),
		attribute.Int("health_change", total),
		attribute.Int("kills", kills),
	)
	return deltas
}

// ResolveAbility computes the delta of an ability on its target. Abilities
// with no effect produce no delta.
func ResolveAbility(ability *gamedata.AbilityDef, target Participant) []event.HealthDelta {
	switch ability.Effect {
	case gamedata.EffectDamage:
		return []event.HealthDelta{hurt(target, ability.Power)}
	case gamedata.EffectHeal:
		return []event.HealthDelta{heal(target, ability.Power)}
	default:
		return []event.HealthDelta{}
	}
}
