package entity

import (
	"slices"

	"github.com/samdwyer/hexclash/internal/hex"
)

// Roster maps unit ids to live unit state. It is owned by a single game
// and never handed out; readers get copies.
type Roster struct {
	units map[UnitID]*Unit
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{units: make(map[UnitID]*Unit)}
}

// Len returns the number of live units.
func (r *Roster) Len() int {
	return len(r.units)
}

// Get returns a copy of the unit.
func (r *Roster) Get(id UnitID) (Unit, bool) {
	u, ok := r.units[id]
	if !ok {
		return Unit{}, false
	}
	return u.Clone(), true
}

// Contains reports whether the unit is live.
func (r *Roster) Contains(id UnitID) bool {
	_, ok := r.units[id]
	return ok
}

// Insert adds a unit. Inserting an existing id panics.
func (r *Roster) Insert(u Unit) {
	if _, ok := r.units[u.ID]; ok {
		panic("entity: duplicate unit " + u.ID.String())
	}
	clone := u.Clone()
	r.units[u.ID] = &clone
}

// Remove deletes a unit and reports whether it was present.
func (r *Roster) Remove(id UnitID) bool {
	if _, ok := r.units[id]; !ok {
		return false
	}
	delete(r.units, id)
	return true
}

// SetPosition moves a unit. Grid occupancy must be updated in the same
// mutation by the caller.
func (r *Roster) SetPosition(id UnitID, pos hex.Position) {
	r.mustGet(id).Position = pos
}

// SetHealth overwrites a unit's health.
func (r *Roster) SetHealth(id UnitID, health int) {
	r.mustGet(id).Health = health
}

// SetActions overwrites a unit's remaining budget.
func (r *Roster) SetActions(id UnitID, b Budget) {
	r.mustGet(id).Actions = b.Clone()
}

// ResetActions refills a unit's budget from its allowance.
func (r *Roster) ResetActions(id UnitID) {
	u := r.mustGet(id)
	u.Actions = u.Allowance.Clone()
}

// IDs returns every live unit id in ascending order.
func (r *Roster) IDs() []UnitID {
	ids := make([]UnitID, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Units returns copies of every live unit ordered by id.
func (r *Roster) Units() []Unit {
	out := make([]Unit, 0, len(r.units))
	for _, id := range r.IDs() {
		out = append(out, r.units[id].Clone())
	}
	return out
}

// CountOwned returns how many live units the player owns.
func (r *Roster) CountOwned(owner PlayerID) int {
	n := 0
	for _, u := range r.units {
		if u.Owner == owner {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the roster.
func (r *Roster) Clone() *Roster {
	out := NewRoster()
	for _, u := range r.units {
		out.Insert(*u)
	}
	return out
}

func (r *Roster) mustGet(id UnitID) *Unit {
	u, ok := r.units[id]
	if !ok {
		panic("entity: unknown unit " + id.String())
	}
	return u
}
