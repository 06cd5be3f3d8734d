package game

import (
	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/hex"
)

// Action is a proposed action. The set of variants is closed.
type Action interface {
	Name() string
	isAction()
}

// Move walks the acting unit along Path, which starts at its position.
type Move struct {
	Path hex.Path
}

// Attack uses one of the acting unit's attacks on Target.
type Attack struct {
	Target entity.UnitID
	Attack string
}

// Ability uses one of the acting unit's abilities. A nil Target aims it at
// the unit itself.
type Ability struct {
	Ability string
	Target  *entity.UnitID
}

// Spawn places a new unit of Class at Position during the spawn phase.
type Spawn struct {
	Class    string
	Position hex.Position
}

// EndTurn ends the acting unit's turn, or the player's part of the spawn
// phase.
type EndTurn struct{}

func (Move) Name() string    { return "move" }
func (Attack) Name() string  { return "attack" }
func (Ability) Name() string { return "ability" }
func (Spawn) Name() string   { return "spawn" }
func (EndTurn) Name() string { return "end_turn" }

func (Move) isAction()    {}
func (Attack) isAction()  {}
func (Ability) isAction() {}
func (Spawn) isAction()   {}
func (EndTurn) isAction() {}
