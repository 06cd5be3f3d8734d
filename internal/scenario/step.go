package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/game"
	"github.com/samdwyer/hexclash/internal/hex"
)

// Step is one scripted proposal. Expect names the rejection kind the step
// must produce (e.g. "invalid_path"); empty means it must succeed.
type Step struct {
	Player  uint32   `yaml:"player"`
	Do      string   `yaml:"do"`
	Class   string   `yaml:"class,omitempty"`
	At      []int    `yaml:"at,omitempty"`
	Path    [][]int  `yaml:"path,omitempty"`
	Dirs    []string `yaml:"dirs,omitempty"`
	Target  *uint32  `yaml:"target,omitempty"`
	Attack  string   `yaml:"attack,omitempty"`
	Ability string   `yaml:"ability,omitempty"`
	Expect  string   `yaml:"expect,omitempty"`
}

// Action converts the step into an engine action.
func (s Step) Action() (game.Action, error) {
	switch s.Do {
	case "spawn":
		pos, err := position(s.At)
		if err != nil {
			return nil, fmt.Errorf("spawn: %w", err)
		}
		if s.Class == "" {
			return nil, errors.New("spawn: class is required")
		}
		return game.Spawn{Class: s.Class, Position: pos}, nil

	case "move":
		path, err := s.path()
		if err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
		return game.Move{Path: path}, nil

	case "attack":
		if s.Target == nil || s.Attack == "" {
			return nil, errors.New("attack: target and attack are required")
		}
		return game.Attack{Target: entity.UnitID(*s.Target), Attack: s.Attack}, nil

	case "ability":
		if s.Ability == "" {
			return nil, errors.New("ability: ability is required")
		}
		a := game.Ability{Ability: s.Ability}
		if s.Target != nil {
			id := entity.UnitID(*s.Target)
			a.Target = &id
		}
		return a, nil

	case "end_turn":
		return game.EndTurn{}, nil

	default:
		return nil, fmt.Errorf("unknown action %q", s.Do)
	}
}

// path builds a move path from either explicit cells or a start cell and
// step directions.
func (s Step) path() (hex.Path, error) {
	if len(s.Path) > 0 {
		cells := make([]hex.Position, len(s.Path))
		for i, c := range s.Path {
			pos, err := position(c)
			if err != nil {
				return hex.Path{}, fmt.Errorf("cell %d: %w", i, err)
			}
			cells[i] = pos
		}
		return hex.NewPath(cells...), nil
	}

	start, err := position(s.At)
	if err != nil {
		return hex.Path{}, fmt.Errorf("start: %w", err)
	}
	dirs := make([]hex.Direction, len(s.Dirs))
	for i, name := range s.Dirs {
		d, ok := direction(name)
		if !ok {
			return hex.Path{}, fmt.Errorf("unknown direction %q", name)
		}
		dirs[i] = d
	}
	return hex.Trace(start, dirs...), nil
}

func position(xy []int) (hex.Position, error) {
	if len(xy) != 2 {
		return hex.Position{}, fmt.Errorf("position needs [x, y], got %v", xy)
	}
	return hex.Pos(xy[0], xy[1]), nil
}

func direction(name string) (hex.Direction, bool) {
	for _, d := range hex.Directions {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}

// Result summarizes a scripted run.
type Result struct {
	Accepted int
	Rejected int
	Changes  []event.Change
}

// Run proposes every step of the script in order. A step that is
// rejected when it should succeed, or the other way round, stops the run.
func Run(ctx context.Context, g *game.Game, script []Step) (Result, error) {
	var res Result
	for i, step := range script {
		action, err := step.Action()
		if err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
		player := entity.PlayerID(step.Player)

		changes, err := g.Propose(ctx, player, action)
		switch {
		case err == nil && step.Expect == "":
			res.Accepted++
			res.Changes = append(res.Changes, changes...)
			for _, c := range changes {
				log.Printf("Step %d: %v %s", i+1, player, c)
			}
		case err == nil:
			return res, fmt.Errorf("step %d: %s by %v succeeded, want %s", i+1, action.Name(), player, step.Expect)
		case game.KindOf(err).String() == step.Expect:
			res.Rejected++
			log.Printf("Step %d: %v %s rejected as expected: %v", i+1, player, action.Name(), err)
		default:
			return res, fmt.Errorf("step %d: %s by %v: %w", i+1, action.Name(), player, err)
		}
	}
	return res, nil
}
