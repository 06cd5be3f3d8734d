package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/game"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/world"
)

type cell struct {
	r     rune
	style tcell.Style
}

type fakeCanvas struct {
	cells map[[2]int]cell
	shown int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{cells: make(map[[2]int]cell)}
}

func (c *fakeCanvas) SetContent(x, y int, r rune, style tcell.Style) {
	c.cells[[2]int{x, y}] = cell{r: r, style: style}
}

func (c *fakeCanvas) Clear() { c.cells = make(map[[2]int]cell) }
func (c *fakeCanvas) Show()  { c.shown++ }

func (c *fakeCanvas) line(y int) string {
	var b strings.Builder
	for x := 0; ; x++ {
		cl, ok := c.cells[[2]int{x, y}]
		if !ok {
			return b.String()
		}
		b.WriteRune(cl.r)
	}
}

func TestCellPlacesNeighboursAround(t *testing.T) {
	board := world.NewGrid(4, 3).State()
	cx, cy := Cell(board, hex.Pos(1, 1))

	tests := []struct {
		dir    hex.Direction
		dx, dy int
	}{
		{hex.Right, 2, 0},
		{hex.Left, -2, 0},
		{hex.UpRight, 1, -1},
		{hex.UpLeft, -1, -1},
		{hex.DownRight, 1, 1},
		{hex.DownLeft, -1, 1},
	}
	for _, tt := range tests {
		x, y := Cell(board, hex.Pos(1, 1).Offset(tt.dir.Vec()))
		if x-cx != tt.dx || y-cy != tt.dy {
			t.Errorf("%s neighbour drawn at offset (%d,%d), want (%d,%d)", tt.dir, x-cx, y-cy, tt.dx, tt.dy)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	catalog := gamedata.MustLoadCatalog()
	grid := world.NewGrid(4, 3)
	grid.SetTerrain(hex.Pos(3, 0), world.StillWater())

	players := []entity.Player{{ID: 1, Name: "red"}, {ID: 2, Name: "blue"}}
	g, err := game.New(ctx, game.Config{}, catalog, players, grid)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	propose := func(p entity.PlayerID, a game.Action) {
		t.Helper()
		if _, err := g.Propose(ctx, p, a); err != nil {
			t.Fatalf("Propose(%s) error = %v", a.Name(), err)
		}
	}
	propose(1, game.Spawn{Class: "knight", Position: hex.Pos(0, 0)})
	propose(2, game.Spawn{Class: "archer", Position: hex.Pos(2, 2)})
	propose(1, game.EndTurn{})
	propose(2, game.EndTurn{})

	canvas := newFakeCanvas()
	NewRenderer(canvas, catalog).Render(g.View())

	if canvas.shown != 1 {
		t.Errorf("Show called %d times, want 1", canvas.shown)
	}

	board := g.View().Board
	x, y := Cell(board, hex.Pos(0, 0))
	if got := canvas.cells[[2]int{x, y}].r; got != 'K' {
		t.Errorf("knight cell shows %q, want 'K'", got)
	}
	x, y = Cell(board, hex.Pos(2, 2))
	archer := canvas.cells[[2]int{x, y}]
	if archer.r != 'A' {
		t.Errorf("archer cell shows %q, want 'A'", archer.r)
	}
	_, _, attrs := archer.style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("acting unit should be highlighted")
	}
	x, y = Cell(board, hex.Pos(3, 0))
	if got := canvas.cells[[2]int{x, y}].r; got != '~' {
		t.Errorf("water cell shows %q, want '~'", got)
	}

	status := canvas.line(board.Height + 1)
	if !strings.HasPrefix(status, "Round 1  Turn 2  unit_turn  active #1 (blue)") {
		t.Errorf("status line = %q", status)
	}
	if first := canvas.line(board.Height + 3); !strings.Contains(first, "knight") || !strings.Contains(first, "30/30") {
		t.Errorf("unit line = %q", first)
	}
}
