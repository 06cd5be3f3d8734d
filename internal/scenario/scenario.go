// Package scenario loads YAML scenario files: a board, the players and a
// script of proposals to feed into a game.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/hexclash/data"
	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/world"
)

// Scenario is a decoded scenario file.
type Scenario struct {
	Name    string   `yaml:"name"`
	Board   Board    `yaml:"board"`
	Players []Player `yaml:"players"`
	Script  []Step   `yaml:"script"`
}

// Board describes the map either as explicit rows or as a generated board
// of the given size and seed.
type Board struct {
	Rows   []string `yaml:"rows"` // top row first
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Seed   int64    `yaml:"seed"`
}

// Player is one participant.
type Player struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

// Load reads a scenario from a file path, or failing that from the
// bundled scenarios by name.
func Load(name string) (*Scenario, error) {
	content, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		content, err = fs.ReadFile(data.FS(), strings.TrimSuffix(name, ".yaml")+".yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", name, err)
	}
	s, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(content []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(s.Board.Rows) == 0 {
		if s.Board.Width == 0 {
			s.Board.Width = world.DefaultWidth
		}
		if s.Board.Height == 0 {
			s.Board.Height = world.DefaultHeight
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario without building anything.
func (s *Scenario) Validate() error {
	if len(s.Players) == 0 {
		return errors.New("at least one player is required")
	}
	seen := make(map[uint32]bool, len(s.Players))
	for _, p := range s.Players {
		if seen[p.ID] {
			return fmt.Errorf("duplicate player %d", p.ID)
		}
		seen[p.ID] = true
	}
	if _, err := parseRows(s.Board.Rows); err != nil {
		return err
	}
	if len(s.Board.Rows) == 0 && (s.Board.Width <= 0 || s.Board.Height <= 0) {
		return fmt.Errorf("board size %dx%d must be positive", s.Board.Width, s.Board.Height)
	}
	for i, step := range s.Script {
		if _, err := step.Action(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if !seen[step.Player] {
			return fmt.Errorf("step %d: unknown player %d", i+1, step.Player)
		}
	}
	return nil
}

// Participants returns the players as engine players.
func (s *Scenario) Participants() []entity.Player {
	out := make([]entity.Player, len(s.Players))
	for i, p := range s.Players {
		out[i] = entity.Player{ID: entity.PlayerID(p.ID), Name: p.Name}
	}
	return out
}

// Grid builds the board.
func (s *Scenario) Grid(ctx context.Context) (*world.Grid, error) {
	if len(s.Board.Rows) == 0 {
		b := world.NewBoard(s.Board.Width, s.Board.Height, rand.New(rand.NewSource(s.Board.Seed)))
		b.Generate(ctx)
		return b.Grid, nil
	}

	rows, err := parseRows(s.Board.Rows)
	if err != nil {
		return nil, err
	}
	height := len(rows)
	g := world.NewGrid(len(rows[0]), height)
	for i, row := range rows {
		y := height - 1 - i
		for x, t := range row {
			g.SetTerrain(hex.Pos(x, y), t)
		}
	}
	return g, nil
}

func parseRows(rows []string) ([][]world.Terrain, error) {
	out := make([][]world.Terrain, 0, len(rows))
	for i, row := range rows {
		var cells []world.Terrain
		for _, r := range row {
			if unicode.IsSpace(r) {
				continue
			}
			t, err := terrainOf(r)
			if err != nil {
				return nil, fmt.Errorf("board row %d: %w", i+1, err)
			}
			cells = append(cells, t)
		}
		if len(cells) == 0 {
			return nil, fmt.Errorf("board row %d is empty", i+1)
		}
		if len(out) > 0 && len(cells) != len(out[0]) {
			return nil, fmt.Errorf("board row %d has %d cells, want %d", i+1, len(cells), len(out[0]))
		}
		out = append(out, cells)
	}
	return out, nil
}

func terrainOf(r rune) (world.Terrain, error) {
	switch {
	case r == '.':
		return world.Ground(), nil
	case r == '#':
		return world.Void(), nil
	case r == '~':
		return world.StillWater(), nil
	case r >= '0' && r <= '5':
		return world.Current(hex.Direction(r - '0').Vec()), nil
	default:
		return world.Terrain{}, fmt.Errorf("unknown terrain %q", r)
	}
}
