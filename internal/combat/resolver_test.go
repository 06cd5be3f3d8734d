package combat

import (
	"context"
	"reflect"
	"testing"

	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
)

func TestDamage(t *testing.T) {
	tests := []struct {
		name    string
		attack  gamedata.AttackDef
		defense float64
		want    int
	}{
		{"base only", gamedata.AttackDef{BaseDamage: 10}, 0.9, 10},
		{"pierce ignores half", gamedata.AttackDef{BaseDamage: 6, Profile: gamedata.DamageProfile{Pierce: 4}}, 0.2, 9},
		{"blunt and slash", gamedata.AttackDef{BaseDamage: 5, Profile: gamedata.DamageProfile{Blunt: 1, Slash: 4}}, 0.5, 7},
		{"undefended", gamedata.AttackDef{BaseDamage: 0, Profile: gamedata.DamageProfile{Slash: 3}}, 0, 3},
		{"minimum one", gamedata.AttackDef{BaseDamage: 0, Profile: gamedata.DamageProfile{Blunt: 3}}, 1, 1},
		{"defense clamped", gamedata.AttackDef{BaseDamage: 1, Profile: gamedata.DamageProfile{Slash: 2}}, -3, 3},
		{"heal", gamedata.AttackDef{BaseDamage: -6}, 0, 0},
	}

	for _, tt := range tests {
		if got := Damage(&tt.attack, tt.defense); got != tt.want {
			t.Errorf("%s: Damage() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDamageMonotonicInDefense(t *testing.T) {
	attack := &gamedata.AttackDef{BaseDamage: 2, Profile: gamedata.DamageProfile{Pierce: 7, Blunt: 5, Slash: 3}}
	prev := Damage(attack, 0)
	for d := 0.05; d <= 1.0; d += 0.05 {
		got := Damage(attack, d)
		if got > prev {
			t.Fatalf("Damage rose from %d to %d at defense %.2f", prev, got, d)
		}
		prev = got
	}
}

func TestStrike(t *testing.T) {
	target := Participant{ID: 2, Health: 5, MaxHealth: 12}

	got := Strike(&gamedata.AttackDef{BaseDamage: 10}, target)
	want := event.HealthDelta{Unit: 2, Amount: -5, Before: 5, After: 0, Killed: true}
	if got != want {
		t.Errorf("Strike(kill) = %+v, want %+v", got, want)
	}

	target.Health = 10
	got = Strike(&gamedata.AttackDef{BaseDamage: -6}, target)
	want = event.HealthDelta{Unit: 2, Amount: 2, Before: 10, After: 12}
	if got != want {
		t.Errorf("Strike(heal) = %+v, want %+v", got, want)
	}
}

func TestResolveOrdersNearestFirst(t *testing.T) {
	attack := &gamedata.AttackDef{ID: "volley", BaseDamage: 3}
	attacker := Participant{ID: 0, Position: hex.Pos(0, 0)}
	targets := []Participant{
		{ID: 7, Health: 10, MaxHealth: 10, Position: hex.Pos(3, 0)},
		{ID: 5, Health: 10, MaxHealth: 10, Position: hex.Pos(2, 0)},
		{ID: 3, Health: 2, MaxHealth: 10, Position: hex.Pos(0, 2)},
	}

	deltas := Resolve(context.Background(), attack, attacker, targets)

	var ids []int
	for _, d := range deltas {
		ids = append(ids, int(d.Unit))
	}
	if want := []int{3, 5, 7}; !reflect.DeepEqual(ids, want) {
		t.Errorf("resolution order = %v, want %v", ids, want)
	}
	if !deltas[0].Killed || deltas[1].Killed {
		t.Errorf("kill flags = %v, %v", deltas[0].Killed, deltas[1].Killed)
	}

	again := Resolve(context.Background(), attack, attacker, targets)
	if !reflect.DeepEqual(deltas, again) {
		t.Error("Resolve is not deterministic")
	}
}

func TestResolveAbility(t *testing.T) {
	target := Participant{ID: 1, Health: 8, MaxHealth: 10}

	tests := []struct {
		ability gamedata.AbilityDef
		want    []event.HealthDelta
	}{
		{gamedata.AbilityDef{Effect: gamedata.EffectHeal, Power: 5}, []event.HealthDelta{{Unit: 1, Amount: 2, Before: 8, After: 10}}},
		{gamedata.AbilityDef{Effect: gamedata.EffectDamage, Power: 4}, []event.HealthDelta{{Unit: 1, Amount: -4, Before: 8, After: 4}}},
		{gamedata.AbilityDef{Effect: gamedata.EffectNone}, []event.HealthDelta{}},
	}

	for _, tt := range tests {
		if got := ResolveAbility(&tt.ability, target); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ResolveAbility(%s) = %+v, want %+v", tt.ability.Effect, got, tt.want)
		}
	}
}

func TestAffectedCells(t *testing.T) {
	from, target := hex.Pos(2, 2), hex.Pos(3, 2)

	tests := []struct {
		aoe  gamedata.Aoe
		want []hex.Position
	}{
		{gamedata.Aoe{Pattern: gamedata.AoeSingle}, []hex.Position{{X: 3, Y: 2}}},
		{gamedata.Aoe{Pattern: gamedata.AoeSides}, []hex.Position{{X: 3, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 3}}},
		{gamedata.Aoe{Pattern: gamedata.AoeLine, Size: 2}, []hex.Position{{X: 3, Y: 2}, {X: 4, Y: 2}, {X: 5, Y: 2}}},
		{gamedata.Aoe{Pattern: gamedata.AoeCone, Size: 2}, []hex.Position{{X: 3, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 1}, {X: 3, Y: 3}}},
	}

	for _, tt := range tests {
		got := AffectedCells(tt.aoe, from, target)
		if len(got) != len(tt.want) {
			t.Errorf("%s: AffectedCells() = %v, want %v", tt.aoe.Pattern, got, tt.want)
			continue
		}
		set := map[hex.Position]bool{}
		for _, c := range got {
			set[c] = true
		}
		for _, c := range tt.want {
			if !set[c] {
				t.Errorf("%s: AffectedCells() = %v, missing %v", tt.aoe.Pattern, got, c)
			}
		}
		if got[0] != target {
			t.Errorf("%s: first cell = %v, want the target", tt.aoe.Pattern, got[0])
		}
	}
}

func TestAffectedCellsRadiusExcludesAttacker(t *testing.T) {
	from, target := hex.Pos(2, 2), hex.Pos(3, 2)
	cells := AffectedCells(gamedata.Aoe{Pattern: gamedata.AoeRadius, Size: 1}, from, target)

	if len(cells) != 6 {
		t.Errorf("len(cells) = %d, want 6", len(cells))
	}
	for _, c := range cells {
		if c == from {
			t.Error("radius pattern should exclude the attacker's cell")
		}
	}
}
