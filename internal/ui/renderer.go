package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/game"
	"github.com/samdwyer/hexclash/internal/gamedata"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/world"
)

var ownerBackgrounds = []tcell.Color{
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorDarkGreen,
	tcell.ColorPurple,
}

// Renderer handles drawing the game to a canvas.
type Renderer struct {
	canvas  Canvas
	catalog *gamedata.Catalog
}

// NewRenderer creates a renderer drawing class glyphs from catalog.
func NewRenderer(canvas Canvas, catalog *gamedata.Catalog) *Renderer {
	return &Renderer{canvas: canvas, catalog: catalog}
}

// Cell returns the canvas coordinates of a board position. Rows are drawn
// top to bottom from the highest y, each shifted half a cell so that the
// six neighbours of a cell surround it.
func Cell(board world.GridState, pos hex.Position) (x, y int) {
	return 2*pos.X + pos.Y, board.Height - 1 - pos.Y
}

// Render draws the board, the units, a status line and the unit list.
func (r *Renderer) Render(v game.View) {
	r.canvas.Clear()

	board := v.Board
	for i, t := range board.Terrain {
		pos := hex.Pos(i%board.Width, i/board.Width)
		x, y := Cell(board, pos)
		r.canvas.SetContent(x, y, t.Rune(), terrainStyle(t))
	}

	owners := make(map[entity.PlayerID]int, len(v.Players))
	names := make(map[entity.PlayerID]string, len(v.Players))
	for i, p := range v.Players {
		owners[p.ID] = i
		names[p.ID] = p.Name
	}

	for _, u := range v.Units {
		x, y := Cell(board, u.Position)
		r.canvas.SetContent(x, y, r.glyph(u), r.unitStyle(u, owners[u.Owner], v.HasActive && v.Active == u.ID))
	}

	line := board.Height + 1
	r.RenderMessage(status(v, names), line)
	for i, u := range v.Units {
		owner := names[u.Owner]
		if owner == "" {
			owner = u.Owner.String()
		}
		msg := fmt.Sprintf("%-4s %c %-9s %-6s %3d/%-3d %v", u.ID, r.glyph(u), u.Class, owner, u.Health, u.MaxHealth, u.Position)
		r.RenderMessage(msg, line+2+i)
	}

	r.canvas.Show()
}

func status(v game.View, names map[entity.PlayerID]string) string {
	msg := fmt.Sprintf("Round %d  Turn %d  %s", v.Round, v.Turn, v.Phase)
	if v.HasActive {
		msg += fmt.Sprintf("  active %s", v.Active)
		for _, u := range v.Units {
			if u.ID == v.Active {
				msg += fmt.Sprintf(" (%s)", names[u.Owner])
			}
		}
	}
	return msg
}

func (r *Renderer) glyph(u entity.Unit) rune {
	if def := r.catalog.Class(u.Class); def != nil {
		return def.SymbolRune()
	}
	return '?'
}

func (r *Renderer) unitStyle(u entity.Unit, owner int, active bool) tcell.Style {
	fg := tcell.ColorWhite
	if def := r.catalog.Class(u.Class); def != nil {
		fg = def.TCellColor()
	}
	style := tcell.StyleDefault.
		Foreground(fg).
		Background(ownerBackgrounds[owner%len(ownerBackgrounds)]).
		Bold(true)
	if active {
		style = style.Underline(true).Reverse(true)
	}
	return style
}

// terrainStyle returns the appropriate style for a terrain kind.
func terrainStyle(t world.Terrain) tcell.Style {
	switch t.Kind {
	case world.TerrainGround:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TerrainWaterStill:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TerrainWaterCurrent:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on the given line.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}
