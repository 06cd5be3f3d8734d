package event

import (
	"reflect"
	"testing"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/hex"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnitMoved, "unit_moved"},
		{KindUnitAttacked, "unit_attacked"},
		{KindAbilityUsed, "ability_used"},
		{KindUnitSpawned, "unit_spawned"},
		{KindTurnEnded, "turn_ended"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	target := entity.UnitID(3)
	changes := []Change{
		UnitMoved{Unit: 1, Path: hex.Trace(hex.Pos(0, 0), hex.Right)},
		UnitAttacked{Attacker: 1, Target: 2, Attack: "thrust", Deltas: []HealthDelta{{Unit: 2, Amount: -6, Before: 10, After: 4}}},
		AbilityUsed{Unit: 1, Ability: "rally", Target: &target, Deltas: []HealthDelta{}},
		UnitSpawned{Unit: entity.Unit{ID: 4, Class: "archer", Actions: entity.Budget{}, Allowance: entity.Budget{}}},
		TurnEnded{Round: 1, Turn: 2, Player: 1},
	}

	for _, c := range changes {
		rec := Wrap(c)
		if rec.Kind != c.Kind() {
			t.Errorf("Wrap(%T).Kind = %s, want %s", c, rec.Kind, c.Kind())
		}
		got, err := rec.Unwrap()
		if err != nil {
			t.Fatalf("Unwrap(%s) error = %v", rec.Kind, err)
		}
		if !reflect.DeepEqual(got, c) {
			t.Errorf("Unwrap(Wrap(%v)) = %v", c, got)
		}
	}

	if _, err := (Record{Kind: KindUnitMoved}).Unwrap(); err == nil {
		t.Error("Unwrap of an empty record should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	target := entity.UnitID(9)
	orig := AbilityUsed{Unit: 1, Ability: "smite", Target: &target, Deltas: []HealthDelta{{Unit: 9, Amount: -4}}}

	cp := Clone(orig).(AbilityUsed)
	*cp.Target = 5
	cp.Deltas[0].Amount = 0

	if *orig.Target != 9 || orig.Deltas[0].Amount != -4 {
		t.Error("Clone() shares memory with the original")
	}
}
