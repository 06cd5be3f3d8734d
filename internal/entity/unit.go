package entity

import (
	"fmt"

	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
)

// UnitID is a stable handle into the roster. Ids are never reused within
// a game, so history can refer to dead units.
type UnitID uint32

// String returns "#<n>".
func (id UnitID) String() string {
	return fmt.Sprintf("#%d", uint32(id))
}

// Unit is the mutable state of one unit on the board. Class stats are
// copied in at spawn so resolution never depends on the content tables
// changing underneath a running game.
type Unit struct {
	ID        UnitID       `json:"id" msgpack:"id"`
	Owner     PlayerID     `json:"owner" msgpack:"owner"`
	Class     string       `json:"class" msgpack:"class"`
	Health    int          `json:"health" msgpack:"health"`
	MaxHealth int          `json:"maxHealth" msgpack:"max_health"`
	Defense   float64      `json:"defense" msgpack:"defense"`
	Speed     int          `json:"speed" msgpack:"speed"`
	Movement  int          `json:"movement" msgpack:"movement"`
	Position  hex.Position `json:"position" msgpack:"position"`
	Actions   Budget       `json:"actions" msgpack:"actions"`     // remaining this turn
	Allowance Budget       `json:"allowance" msgpack:"allowance"` // granted at turn start
}

// NewUnit creates a unit of the given class at full health.
func NewUnit(id UnitID, owner PlayerID, def *gamedata.ClassDef, pos hex.Position) Unit {
	allowance := BudgetFromDefs(def.Actions)
	return Unit{
		ID:        id,
		Owner:     owner,
		Class:     def.ID,
		Health:    def.Health,
		MaxHealth: def.Health,
		Defense:   def.Defense,
		Speed:     def.Speed,
		Movement:  def.Movement,
		Position:  pos,
		Actions:   allowance.Clone(),
		Allowance: allowance,
	}
}

// IsAlive returns true if the unit has health remaining.
func (u *Unit) IsAlive() bool { return u.Health > 0 }

// EffectiveSpeed is the turn-order priority of the unit.
func (u *Unit) EffectiveSpeed() int { return u.Speed }

// TakeDamage reduces health and returns the damage actually taken.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, u.Health)
	u.Health -= actual
	return actual
}

// Heal restores health up to the maximum and returns the amount healed.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, u.MaxHealth-u.Health)
	if actual < 0 {
		return 0
	}
	u.Health += actual
	return actual
}

// Clone returns a copy that shares no memory with u.
func (u Unit) Clone() Unit {
	u.Actions = u.Actions.Clone()
	u.Allowance = u.Allowance.Clone()
	return u
}
