package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/world"
)

const (
	p1 entity.PlayerID = 1
	p2 entity.PlayerID = 2
)

func testCatalog(t *testing.T) *gamedata.Catalog {
	t.Helper()

	move := gamedata.ActionPointDef{Kind: gamedata.ActionMove}
	attack := gamedata.ActionPointDef{Kind: gamedata.ActionAttack}
	ability := gamedata.ActionPointDef{Kind: gamedata.ActionAbility}

	classes := []gamedata.ClassDef{
		{ID: "soldier", Health: 10, Speed: 3, Movement: 2,
			Actions: []gamedata.ActionPointDef{move, attack, ability},
			Attacks: []string{"strike", "sweep"}, Abilities: []string{"bandage", "smite"}},
		{ID: "scout", Health: 6, Speed: 5, Movement: 4,
			Actions: []gamedata.ActionPointDef{{Kind: gamedata.ActionMoveOrAttack}},
			Attacks: []string{"strike"}},
		{ID: "giant", Health: 30, Defense: 0.5, Speed: 1, Movement: 1, SpawnCost: 2,
			Actions: []gamedata.ActionPointDef{move, attack},
			Attacks: []string{"strike", "quake"}},
	}
	attacks := []gamedata.AttackDef{
		{ID: "strike", BaseDamage: 10, Range: gamedata.AttackRange{Inner: 1, Outer: 1},
			Aoe: gamedata.Aoe{Pattern: gamedata.AoeSingle}, Target: gamedata.TargetEnemy},
		{ID: "sweep", BaseDamage: 2, Range: gamedata.AttackRange{Inner: 1, Outer: 1},
			Aoe: gamedata.Aoe{Pattern: gamedata.AoeSides}, Target: gamedata.TargetEnemy},
		{ID: "quake", BaseDamage: 3, Range: gamedata.AttackRange{Inner: 1, Outer: 2},
			Aoe: gamedata.Aoe{Pattern: gamedata.AoeRadius, Size: 1}, Target: gamedata.TargetEnemy},
	}
	abilities := []gamedata.AbilityDef{
		{ID: "bandage", Effect: gamedata.EffectHeal, Target: gamedata.TargetAlly,
			Range: gamedata.AttackRange{Inner: 0, Outer: 1}, Power: 3},
		{ID: "smite", Effect: gamedata.EffectDamage, Target: gamedata.TargetEnemy,
			Range: gamedata.AttackRange{Inner: 1, Outer: 2}, Power: 4},
	}

	catalog, err := gamedata.NewCatalog(classes, attacks, abilities)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return catalog
}

func newTestGame(t *testing.T, cfg Config, width, height int) *Game {
	t.Helper()
	return newTestGameOn(t, cfg, world.NewGrid(width, height))
}

func newTestGameOn(t *testing.T, cfg Config, grid *world.Grid) *Game {
	t.Helper()
	players := []entity.Player{{ID: p1, Name: "red"}, {ID: p2, Name: "blue"}}
	g, err := New(context.Background(), cfg, testCatalog(t), players, grid)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func propose(t *testing.T, g *Game, player entity.PlayerID, action Action) []event.Change {
	t.Helper()
	changes, err := g.Propose(context.Background(), player, action)
	if err != nil {
		t.Fatalf("Propose(%v, %s) error = %v", player, action.Name(), err)
	}
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after %s: %v", action.Name(), err)
	}
	return changes
}

// expectReject proposes an action that must fail with kind and leave the
// game untouched.
func expectReject(t *testing.T, g *Game, player entity.PlayerID, action Action, kind error) {
	t.Helper()
	before, pending := g.Snapshot(), g.PendingChanges()

	changes, err := g.Propose(context.Background(), player, action)
	if !errors.Is(err, kind) {
		t.Fatalf("Propose(%v, %s) error = %v, want %v", player, action.Name(), err, kind)
	}
	if changes != nil {
		t.Errorf("rejected proposal returned %d changes", len(changes))
	}
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("rejected %s changed the game state", action.Name())
	}
	if !reflect.DeepEqual(pending, g.PendingChanges()) {
		t.Errorf("rejected %s changed the turn log", action.Name())
	}
}

func spawn(t *testing.T, g *Game, player entity.PlayerID, class string, x, y int) entity.UnitID {
	t.Helper()
	changes := propose(t, g, player, Spawn{Class: class, Position: hex.Pos(x, y)})
	return changes[0].(event.UnitSpawned).Unit.ID
}

// endSpawn ends the spawn phase for both players.
func endSpawn(t *testing.T, g *Game) {
	t.Helper()
	propose(t, g, p1, EndTurn{})
	propose(t, g, p2, EndTurn{})
}

// endActive ends the current unit's turn on behalf of its owner.
func endActive(t *testing.T, g *Game) {
	t.Helper()
	id, ok := g.Active()
	if !ok {
		t.Fatal("no active unit")
	}
	u, _ := g.Unit(id)
	propose(t, g, u.Owner, EndTurn{})
}
