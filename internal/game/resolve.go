package game

import (
	"context"
	"slices"

	"github.com/samdwyer/hexclash/internal/combat"
	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
)

// resolveMove validates a walk. Friendly units may be passed through,
// enemies block, and the destination must be free.
func (g *Game) resolveMove(a Move) (event.Change, error) {
	unit, err := g.actor()
	if err != nil {
		return nil, err
	}
	if !unit.Actions.Can(entity.ActionMove) {
		return nil, reject(ErrIllegalAction, "%v has no move left", unit.ID)
	}

	cells := a.Path.Cells
	if len(cells) < 2 {
		return nil, reject(ErrInvalidPath, "path needs at least one step")
	}
	if cells[0] != unit.Position {
		return nil, reject(ErrInvalidPath, "path starts at %v, unit is at %v", cells[0], unit.Position)
	}
	if ok, i := a.Path.Contiguous(); !ok {
		return nil, reject(ErrInvalidPath, "step %d to %v is not adjacent", i, cells[i])
	}

	cost := 0
	last := len(cells) - 1
	for i, pos := range cells[1:] {
		step, ok := g.grid.Cost(pos)
		if !ok {
			return nil, reject(ErrInvalidPath, "cell %v is off the board or not walkable", pos)
		}
		cost += step

		occupant, taken := g.grid.OccupantAt(pos)
		if !taken || occupant == unit.ID {
			continue
		}
		if i+1 == last {
			return nil, reject(ErrInvalidPath, "destination %v is occupied by %v", pos, occupant)
		}
		if other, _ := g.roster.Get(occupant); other.Owner != unit.Owner {
			return nil, reject(ErrInvalidPath, "cell %v is blocked by %v", pos, occupant)
		}
	}
	if cost > unit.Movement {
		return nil, reject(ErrOutOfRange, "path costs %d, %v can move %d", cost, unit.ID, unit.Movement)
	}

	return event.UnitMoved{Unit: unit.ID, Path: a.Path.Clone()}, nil
}

// resolveAttack validates an attack and resolves its damage against every
// unit in the affected area that passes the attack's target filter.
func (g *Game) resolveAttack(ctx context.Context, a Attack) (event.Change, error) {
	attacker, err := g.actor()
	if err != nil {
		return nil, err
	}
	def := g.catalog.Attack(a.Attack)
	if def == nil {
		return nil, reject(ErrIllegalAction, "unknown attack %q", a.Attack)
	}
	if class := g.catalog.Class(attacker.Class); class == nil || !class.HasAttack(def.ID) {
		return nil, reject(ErrIllegalAction, "%s cannot use %s", attacker.Class, def.ID)
	}
	if !attacker.Actions.Can(entity.ActionAttack) {
		return nil, reject(ErrIllegalAction, "%v has no attack left", attacker.ID)
	}

	target, ok := g.roster.Get(a.Target)
	if !ok {
		return nil, reject(ErrInvalidUnit, "unknown target %v", a.Target)
	}
	if !def.Target.Allows(uint32(attacker.Owner), uint32(target.Owner)) {
		return nil, reject(ErrIllegalAction, "%s cannot target %v", def.ID, target.ID)
	}
	if d := hex.Distance(attacker.Position, target.Position); !def.Range.Contains(d) {
		return nil, reject(ErrOutOfRange, "%v is %d away, %s reaches %d..%d", target.ID, d, def.ID, def.Range.Inner, def.Range.Outer)
	}

	victims := []combat.Participant{combat.ParticipantOf(target)}
	for _, pos := range combat.AffectedCells(def.Aoe, attacker.Position, target.Position)[1:] {
		id, taken := g.grid.OccupantAt(pos)
		if !taken {
			continue
		}
		u, _ := g.roster.Get(id)
		if def.Target.Allows(uint32(attacker.Owner), uint32(u.Owner)) {
			victims = append(victims, combat.ParticipantOf(u))
		}
	}

	return event.UnitAttacked{
		Attacker: attacker.ID,
		Target:   target.ID,
		Attack:   def.ID,
		Deltas:   combat.Resolve(ctx, def, combat.ParticipantOf(attacker), victims),
		Effects:  slices.Clone(def.Effects),
	}, nil
}

// resolveAbility validates an ability. Without a target it applies to the
// acting unit, which must then be a legal target for it.
func (g *Game) resolveAbility(a Ability) (event.Change, error) {
	user, err := g.actor()
	if err != nil {
		return nil, err
	}
	def := g.catalog.Ability(a.Ability)
	if def == nil {
		return nil, reject(ErrIllegalAction, "unknown ability %q", a.Ability)
	}
	if class := g.catalog.Class(user.Class); class == nil || !class.HasAbility(def.ID) {
		return nil, reject(ErrIllegalAction, "%s cannot use %s", user.Class, def.ID)
	}
	if !user.Actions.Can(entity.ActionAbility) {
		return nil, reject(ErrIllegalAction, "%v has no ability left", user.ID)
	}

	target := user
	if a.Target != nil {
		t, ok := g.roster.Get(*a.Target)
		if !ok {
			return nil, reject(ErrInvalidUnit, "unknown target %v", *a.Target)
		}
		target = t
	}
	if !def.Target.Allows(uint32(user.Owner), uint32(target.Owner)) {
		return nil, reject(ErrIllegalAction, "%s cannot target %v", def.ID, target.ID)
	}
	if d := hex.Distance(user.Position, target.Position); !def.Range.Contains(d) {
		return nil, reject(ErrOutOfRange, "%v is %d away, %s reaches %d..%d", target.ID, d, def.ID, def.Range.Inner, def.Range.Outer)
	}

	c := event.AbilityUsed{
		Unit:    user.ID,
		Ability: def.ID,
		Deltas:  combat.ResolveAbility(def, combat.ParticipantOf(target)),
	}
	if a.Target != nil {
		id := *a.Target
		c.Target = &id
	}
	return c, nil
}

// resolveSpawn validates placement and the player's spawn allowance.
func (g *Game) resolveSpawn(player entity.PlayerID, a Spawn) (event.Change, error) {
	def := g.catalog.Class(a.Class)
	if def == nil {
		return nil, reject(ErrIllegalAction, "unknown class %q", a.Class)
	}
	if !g.grid.Walkable(a.Position) {
		return nil, reject(ErrInvalidPath, "cannot spawn at %v", a.Position)
	}
	if id, taken := g.grid.OccupantAt(a.Position); taken {
		return nil, reject(ErrInvalidPath, "%v is occupied by %v", a.Position, id)
	}

	if limit := g.cfg.SpawnsPerRound; limit > 0 {
		if spent := g.spawnSpent(player) + spawnCost(def); spent > limit {
			return nil, reject(ErrNotEnoughResources, "%v would spend %d of %d spawn points", player, spent, limit)
		}
	}
	if limit := g.cfg.MaxUnitsPerPlayer; limit > 0 && g.roster.CountOwned(player) >= limit {
		return nil, reject(ErrNotEnoughResources, "%v already has %d units", player, limit)
	}

	return event.UnitSpawned{Unit: entity.NewUnit(g.nextUnitID, player, def, a.Position)}, nil
}

// spawnSpent sums the spawn cost of the player's spawns this phase.
func (g *Game) spawnSpent(player entity.PlayerID) int {
	total := 0
	for _, c := range g.current {
		s, ok := c.(event.UnitSpawned)
		if !ok || s.Unit.Owner != player {
			continue
		}
		total += spawnCost(g.catalog.Class(s.Unit.Class))
	}
	return total
}

func spawnCost(def *gamedata.ClassDef) int {
	if def == nil || def.SpawnCost <= 0 {
		return 1
	}
	return def.SpawnCost
}
