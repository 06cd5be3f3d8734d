package gamedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ActionKind names one kind of action point in a class's per-turn budget.
type ActionKind string

const (
	ActionMove         ActionKind = "move"
	ActionAttack       ActionKind = "attack"
	ActionAbility      ActionKind = "ability"
	ActionMoveOrAttack ActionKind = "move_or_attack"
	ActionWildcard     ActionKind = "wildcard"
	ActionGroup        ActionKind = "group"
)

// ActionPointDef is one entry of a class's action budget. In JSON it is
// either a bare kind string ("move") or {"group": [...]} for a nested group.
type ActionPointDef struct {
	Kind  ActionKind       `json:"kind"`
	Group []ActionPointDef `json:"group,omitempty"`
}

// UnmarshalJSON accepts both the short string form and the object form.
func (a *ActionPointDef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var kind string
		if err := json.Unmarshal(data, &kind); err != nil {
			return err
		}
		*a = ActionPointDef{Kind: ActionKind(kind)}
		return nil
	}

	var raw struct {
		Kind  ActionKind       `json:"kind"`
		Group []ActionPointDef `json:"group"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == "" && len(raw.Group) > 0 {
		raw.Kind = ActionGroup
	}
	*a = ActionPointDef{Kind: raw.Kind, Group: raw.Group}
	return nil
}

// Validate checks the kind and, for groups, every member.
func (a ActionPointDef) Validate() error {
	switch a.Kind {
	case ActionMove, ActionAttack, ActionAbility, ActionMoveOrAttack, ActionWildcard:
		if len(a.Group) > 0 {
			return fmt.Errorf("action point %q cannot have group members", a.Kind)
		}
		return nil
	case ActionGroup:
		if len(a.Group) == 0 {
			return errors.New("action group is empty")
		}
		for _, member := range a.Group {
			if err := member.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown action point kind %q", a.Kind)
	}
}

// ClassDef defines a unit class loaded from JSON.
type ClassDef struct {
	ID        string           `json:"id"`        // Unique identifier (e.g., "spearman")
	Name      string           `json:"name"`      // Display name
	Symbol    string           `json:"symbol"`    // Single character for rendering
	Color     string           `json:"color"`     // "#RRGGBB" or a color name
	Health    int              `json:"health"`    // Base hit points
	Defense   float64          `json:"defense"`   // Damage reduction in [0,1]
	Speed     int              `json:"speed"`     // Base turn-order priority
	Movement  int              `json:"movement"`  // Terrain cost a single move may spend
	SpawnCost int              `json:"spawnCost"` // Spawn slots consumed (0 counts as 1)
	Actions   []ActionPointDef `json:"actions"`   // Per-turn action budget
	Attacks   []string         `json:"attacks"`   // Attack IDs this class can use
	Abilities []string         `json:"abilities"` // Ability IDs this class can use
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return []rune(c.Symbol)[0]
}

// HasAttack reports whether the class may use the attack.
func (c *ClassDef) HasAttack(id string) bool {
	for _, a := range c.Attacks {
		if a == id {
			return true
		}
	}
	return false
}

// HasAbility reports whether the class may use the ability.
func (c *ClassDef) HasAbility(id string) bool {
	for _, a := range c.Abilities {
		if a == id {
			return true
		}
	}
	return false
}

// Validate checks the class stats are usable.
func (c *ClassDef) Validate() error {
	if c.ID == "" {
		return errors.New("class id is required")
	}
	if c.Health <= 0 {
		return fmt.Errorf("class %s: health must be positive", c.ID)
	}
	if c.Defense < 0 || c.Defense > 1 {
		return fmt.Errorf("class %s: defense must be within [0,1]", c.ID)
	}
	if c.Movement < 0 || c.Speed < 0 || c.SpawnCost < 0 {
		return fmt.Errorf("class %s: negative stat", c.ID)
	}
	for _, a := range c.Actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("class %s: %w", c.ID, err)
		}
	}
	return nil
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// Validate checks every class and rejects duplicate IDs.
func (f *ClassesFile) Validate() error {
	seen := make(map[string]bool, len(f.Classes))
	for i := range f.Classes {
		if err := f.Classes[i].Validate(); err != nil {
			return err
		}
		if seen[f.Classes[i].ID] {
			return fmt.Errorf("duplicate class id %q", f.Classes[i].ID)
		}
		seen[f.Classes[i].ID] = true
	}
	return nil
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
