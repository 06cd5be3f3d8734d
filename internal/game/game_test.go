package game

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/turn"
	"github.com/samdwyer/hexclash/internal/world"
)

func TestNewGame(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)

	if g.Phase() != turn.PhaseSpawn || g.Round() != 1 || g.TurnNumber() != 1 {
		t.Errorf("new game at %s round %d turn %d, want spawn round 1 turn 1", g.Phase(), g.Round(), g.TurnNumber())
	}
	if _, ok := g.Active(); ok {
		t.Error("new game should have no acting unit")
	}
	if n := len(g.Snapshots()); n != 1 {
		t.Errorf("new game has %d snapshots, want 1", n)
	}
	if g.ID() == "" {
		t.Error("new game should have an id")
	}
}

func TestNewGameRejectsBadSetup(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(t)

	dup := []entity.Player{{ID: 1}, {ID: 1}}
	if _, err := New(ctx, Config{}, catalog, dup, world.NewGrid(3, 3)); err == nil {
		t.Error("New should reject duplicate players")
	}
	if _, err := New(ctx, Config{}, catalog, nil, world.NewGrid(3, 3)); err == nil {
		t.Error("New should reject an empty player list")
	}
	busy := world.NewGrid(3, 3)
	busy.SetOccupancy(hex.Pos(1, 1), 0)
	if _, err := New(ctx, Config{}, catalog, []entity.Player{{ID: 1}}, busy); err == nil {
		t.Error("New should reject an occupied grid")
	}
}

func TestSpawnThenMoveScenario(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)

	a := spawn(t, g, p1, "soldier", 0, 0)
	b := spawn(t, g, p2, "soldier", 4, 4)
	if a != 0 || b != 1 {
		t.Fatalf("spawned ids %v, %v, want #0, #1", a, b)
	}

	propose(t, g, p1, EndTurn{})
	if g.Phase() != turn.PhaseSpawn {
		t.Fatal("spawn phase should wait for every player")
	}
	propose(t, g, p2, EndTurn{})

	if g.Phase() != turn.PhaseUnitTurn {
		t.Fatalf("Phase() = %s, want unit_turn", g.Phase())
	}
	if id, _ := g.Active(); id != a {
		t.Errorf("Active() = %v, want %v", id, a)
	}
	if got := g.Queue(); !reflect.DeepEqual(got, []entity.UnitID{b}) {
		t.Errorf("Queue() = %v, want [%v]", got, b)
	}

	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(0, 0), hex.Pos(-1, 0))}, ErrInvalidPath)

	changes := propose(t, g, p1, Move{Path: hex.NewPath(hex.Pos(0, 0), hex.Pos(1, 0))})
	if len(changes) != 1 {
		t.Fatalf("move emitted %d changes, want 1", len(changes))
	}
	moved, ok := changes[0].(event.UnitMoved)
	if !ok || moved.Unit != a {
		t.Fatalf("change = %v, want UnitMoved of %v", changes[0], a)
	}
	if id, ok := g.OccupantAt(hex.Pos(1, 0)); !ok || id != a {
		t.Errorf("OccupantAt((1,0)) = %v, %v, want %v", id, ok, a)
	}
	if _, ok := g.OccupantAt(hex.Pos(0, 0)); ok {
		t.Error("origin should be vacant after the move")
	}
	if u, _ := g.Unit(a); u.Position != hex.Pos(1, 0) {
		t.Errorf("unit position = %v, want (1,0)", u.Position)
	}
}

func TestAttackKillsTarget(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)
	attacker := spawn(t, g, p1, "soldier", 0, 0)
	target := spawn(t, g, p2, "soldier", 1, 0)
	endSpawn(t, g)

	changes := propose(t, g, p1, Attack{Target: target, Attack: "strike"})
	if len(changes) != 1 {
		t.Fatalf("attack emitted %d changes, want 1", len(changes))
	}
	hit, ok := changes[0].(event.UnitAttacked)
	if !ok {
		t.Fatalf("change = %T, want UnitAttacked", changes[0])
	}
	if hit.Attacker != attacker || hit.Target != target || hit.Attack != "strike" {
		t.Errorf("UnitAttacked = %+v", hit)
	}
	want := []event.HealthDelta{{Unit: target, Amount: -10, Before: 10, After: 0, Killed: true}}
	if !reflect.DeepEqual(hit.Deltas, want) {
		t.Errorf("Deltas = %+v, want %+v", hit.Deltas, want)
	}

	if _, ok := g.Unit(target); ok {
		t.Error("dead unit still in roster")
	}
	if _, ok := g.OccupantAt(hex.Pos(1, 0)); ok {
		t.Error("dead unit still occupies its cell")
	}
	if len(g.Queue()) != 0 {
		t.Errorf("Queue() = %v, want empty", g.Queue())
	}

	// Its turn is skipped: ending this turn closes the round.
	propose(t, g, p1, EndTurn{})
	if g.Phase() != turn.PhaseSpawn || g.Round() != 2 {
		t.Errorf("after last turn at %s round %d, want spawn round 2", g.Phase(), g.Round())
	}
	if n := len(g.Snapshots()); n != 2 {
		t.Errorf("len(Snapshots()) = %d, want 2", n)
	}
}

func TestRoundVisitsEachQueuedUnitOnce(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)
	spawn(t, g, p1, "scout", 0, 0)   // #0 speed 5
	spawn(t, g, p1, "soldier", 0, 1) // #1 speed 3
	spawn(t, g, p2, "giant", 4, 4)   // #2 speed 1
	spawn(t, g, p2, "scout", 4, 3)   // #3 speed 5
	endSpawn(t, g)

	var visited []entity.UnitID
	for g.Phase() == turn.PhaseUnitTurn {
		id, _ := g.Active()
		visited = append(visited, id)
		endActive(t, g)
	}

	if want := []entity.UnitID{0, 3, 1, 2}; !reflect.DeepEqual(visited, want) {
		t.Errorf("visited %v, want %v", visited, want)
	}
	if g.Round() != 2 {
		t.Errorf("Round() = %d, want 2", g.Round())
	}
}

func TestDeathMidRoundIsSkipped(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)
	scout := spawn(t, g, p1, "scout", 0, 0)
	victim := spawn(t, g, p2, "soldier", 1, 0)
	giant := spawn(t, g, p2, "giant", 4, 4)
	endSpawn(t, g)

	if got := g.Queue(); !reflect.DeepEqual(got, []entity.UnitID{victim, giant}) {
		t.Fatalf("Queue() = %v", got)
	}
	propose(t, g, p1, Attack{Target: victim, Attack: "strike"})
	if got := g.Queue(); !reflect.DeepEqual(got, []entity.UnitID{giant}) {
		t.Errorf("Queue() after kill = %v, want [%v]", got, giant)
	}

	visited := []entity.UnitID{scout}
	endActive(t, g)
	for g.Phase() == turn.PhaseUnitTurn {
		id, _ := g.Active()
		visited = append(visited, id)
		endActive(t, g)
	}
	if want := []entity.UnitID{scout, giant}; !reflect.DeepEqual(visited, want) {
		t.Errorf("visited %v, want %v", visited, want)
	}
}

func TestEmptyRosterClosesRound(t *testing.T) {
	g := newTestGame(t, Config{}, 3, 3)
	endSpawn(t, g)

	if g.Phase() != turn.PhaseSpawn || g.Round() != 2 {
		t.Errorf("empty round ended at %s round %d, want spawn round 2", g.Phase(), g.Round())
	}
	if n := len(g.Turns()); n != 1 {
		t.Errorf("len(Turns()) = %d, want 1", n)
	}
}

func TestSpawnPhaseRules(t *testing.T) {
	g := newTestGame(t, Config{SpawnsPerRound: 2, MaxUnitsPerPlayer: 3}, 5, 5)

	expectReject(t, g, entity.PlayerID(9), Spawn{Class: "soldier", Position: hex.Pos(0, 0)}, ErrNotYourTurn)
	expectReject(t, g, p1, Spawn{Class: "dragon", Position: hex.Pos(0, 0)}, ErrIllegalAction)
	expectReject(t, g, p1, Spawn{Class: "soldier", Position: hex.Pos(5, 0)}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(0, 0), hex.Pos(1, 0))}, ErrIllegalAction)

	spawn(t, g, p1, "giant", 0, 0)
	expectReject(t, g, p2, Spawn{Class: "soldier", Position: hex.Pos(0, 0)}, ErrInvalidPath)
	expectReject(t, g, p1, Spawn{Class: "soldier", Position: hex.Pos(0, 1)}, ErrNotEnoughResources)

	spawn(t, g, p2, "soldier", 4, 4)
	propose(t, g, p1, EndTurn{})
	expectReject(t, g, p1, EndTurn{}, ErrIllegalAction)
	expectReject(t, g, p1, Spawn{Class: "scout", Position: hex.Pos(0, 2)}, ErrIllegalAction)
}

func TestSpawnUnitCap(t *testing.T) {
	g := newTestGame(t, Config{MaxUnitsPerPlayer: 1}, 5, 5)
	spawn(t, g, p1, "scout", 0, 0)
	expectReject(t, g, p1, Spawn{Class: "scout", Position: hex.Pos(0, 1)}, ErrNotEnoughResources)
}

func TestUnitIDsAreNotReused(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)
	spawn(t, g, p1, "soldier", 0, 0)
	victim := spawn(t, g, p2, "scout", 1, 0)
	endSpawn(t, g)

	// The scout is faster and goes first; let it pass.
	endActive(t, g)
	propose(t, g, p1, Attack{Target: victim, Attack: "strike"})
	endActive(t, g)

	if g.Round() != 2 {
		t.Fatalf("Round() = %d, want 2", g.Round())
	}
	if id := spawn(t, g, p2, "scout", 4, 4); id != 2 {
		t.Errorf("spawned id %v, want #2", id)
	}
}

func TestUnitTurnRules(t *testing.T) {
	g := newTestGame(t, Config{}, 6, 5)
	mine := spawn(t, g, p1, "soldier", 1, 1)
	ally := spawn(t, g, p1, "giant", 2, 1)
	enemy := spawn(t, g, p2, "soldier", 4, 1)
	endSpawn(t, g)

	if id, _ := g.Active(); id != mine {
		t.Fatalf("Active() = %v, want %v", id, mine)
	}

	expectReject(t, g, p2, EndTurn{}, ErrNotYourTurn)
	expectReject(t, g, p2, Move{Path: hex.NewPath(hex.Pos(1, 1), hex.Pos(1, 2))}, ErrNotYourTurn)
	expectReject(t, g, p1, Spawn{Class: "soldier", Position: hex.Pos(0, 0)}, ErrIllegalAction)
	expectReject(t, g, p1, Attack{Target: enemy, Attack: "strike"}, ErrOutOfRange)
	expectReject(t, g, p1, Attack{Target: 99, Attack: "strike"}, ErrInvalidUnit)
	expectReject(t, g, p1, Attack{Target: ally, Attack: "strike"}, ErrIllegalAction)
	expectReject(t, g, p1, Attack{Target: enemy, Attack: "quake"}, ErrIllegalAction)
	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(1, 1))}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(0, 0), hex.Pos(1, 0))}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(1, 1), hex.Pos(3, 1))}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.NewPath(hex.Pos(1, 1), hex.Pos(2, 1))}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.Left, hex.UpRight, hex.Right)}, ErrOutOfRange)
	expectReject(t, g, p1, Ability{Ability: "smite"}, ErrIllegalAction)

	// Walking through an ally is allowed; the move point is then spent.
	propose(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.Right, hex.Right)})
	expectReject(t, g, p1, Move{Path: hex.Trace(hex.Pos(3, 1), hex.Left)}, ErrIllegalAction)

	propose(t, g, p1, Attack{Target: enemy, Attack: "strike"})
	expectReject(t, g, p1, Attack{Target: enemy, Attack: "sweep"}, ErrIllegalAction)
}

func TestMoveBlockedByEnemyAndTerrain(t *testing.T) {
	grid := world.NewGrid(6, 5)
	grid.SetTerrain(hex.Pos(1, 2), world.StillWater())
	grid.SetTerrain(hex.Pos(0, 2), world.Void())
	g := newTestGameOn(t, Config{}, grid)

	spawn(t, g, p1, "scout", 1, 1)
	spawn(t, g, p2, "giant", 2, 1)
	endSpawn(t, g)

	expectReject(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.Right, hex.Right)}, ErrInvalidPath)
	expectReject(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.UpLeft)}, ErrInvalidPath)

	// Water costs two: 2 + 1 + 1 + 1 exceeds the scout's 4.
	expectReject(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.UpRight, hex.Right, hex.Right, hex.DownRight)}, ErrOutOfRange)
	propose(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.UpRight, hex.Right)})
}

func TestAbilities(t *testing.T) {
	g := newTestGame(t, Config{}, 5, 5)
	healer := spawn(t, g, p1, "soldier", 1, 1)
	enemy := spawn(t, g, p2, "giant", 3, 1)
	endSpawn(t, g)

	expectReject(t, g, p1, Ability{Ability: "smite", Target: &healer}, ErrIllegalAction)
	propose(t, g, p1, Move{Path: hex.Trace(hex.Pos(1, 1), hex.Left)})
	expectReject(t, g, p1, Ability{Ability: "smite", Target: &enemy}, ErrOutOfRange)

	changes := propose(t, g, p1, Ability{Ability: "bandage"})
	used := changes[0].(event.AbilityUsed)
	if used.Target != nil || len(used.Deltas) != 1 || used.Deltas[0].Amount != 0 {
		t.Errorf("self bandage = %+v", used)
	}
	expectReject(t, g, p1, Ability{Ability: "bandage"}, ErrIllegalAction)
}

func TestAreaAttackFiltersTargets(t *testing.T) {
	g := newTestGame(t, Config{}, 6, 5)
	giant := spawn(t, g, p1, "giant", 0, 2)
	ally := spawn(t, g, p1, "soldier", 2, 3)
	first := spawn(t, g, p2, "soldier", 2, 2)
	second := spawn(t, g, p2, "soldier", 3, 2)
	endSpawn(t, g)

	// Soldiers act first; let them pass until the giant's turn.
	for {
		id, _ := g.Active()
		if id == giant {
			break
		}
		endActive(t, g)
	}

	changes := propose(t, g, p1, Attack{Target: first, Attack: "quake"})
	hit := changes[0].(event.UnitAttacked)

	var ids []entity.UnitID
	for _, d := range hit.Deltas {
		ids = append(ids, d.Unit)
		if d.Amount != -3 {
			t.Errorf("delta on %v = %d, want -3", d.Unit, d.Amount)
		}
	}
	if want := []entity.UnitID{first, second}; !reflect.DeepEqual(ids, want) {
		t.Errorf("quake hit %v, want %v (ally %v spared)", ids, want, ally)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindNone},
		{reject(ErrNotYourTurn, "x"), KindNotYourTurn},
		{fmt.Errorf("wrapped: %w", reject(ErrOutOfRange, "x")), KindOutOfRange},
		{ErrNotEnoughResources, KindNotEnoughResources},
		{errors.New("disk on fire"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
	if got := ErrorKind(99).String(); got != "unknown" {
		t.Errorf("ErrorKind(99).String() = %q, want unknown", got)
	}
}
