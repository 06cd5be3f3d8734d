package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// Registry holds loaded definitions of one kind and provides lookup utilities.
type Registry[T any] struct {
	byID map[string]*T
	all  []T
	ids  []string
}

// NewRegistry creates a registry from loaded definitions, keyed by id(def).
func NewRegistry[T any](defs []T, id func(*T) string) *Registry[T] {
	r := &Registry[T]{
		byID: make(map[string]*T, len(defs)),
		all:  defs,
		ids:  make([]string, 0, len(defs)),
	}
	for i := range defs {
		key := id(&defs[i])
		r.byID[key] = &defs[i]
		r.ids = append(r.ids, key)
	}
	sort.Strings(r.ids)
	return r
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// All returns all definitions in load order.
func (r *Registry[T]) All() []T {
	return r.all
}

// IDs returns every ID in ascending order.
func (r *Registry[T]) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.all)
}

// Catalog bundles every content table the engine reads.
type Catalog struct {
	Classes   *Registry[ClassDef]
	Attacks   *Registry[AttackDef]
	Abilities *Registry[AbilityDef]
}

// NewCatalog builds a catalog and checks that every attack and ability a
// class references exists.
func NewCatalog(classes []ClassDef, attacks []AttackDef, abilities []AbilityDef) (*Catalog, error) {
	c := &Catalog{
		Classes:   NewRegistry(classes, func(d *ClassDef) string { return d.ID }),
		Attacks:   NewRegistry(attacks, func(d *AttackDef) string { return d.ID }),
		Abilities: NewRegistry(abilities, func(d *AbilityDef) string { return d.ID }),
	}
	for _, class := range classes {
		for _, id := range class.Attacks {
			if c.Attacks.GetByID(id) == nil {
				return nil, fmt.Errorf("class %s references unknown attack %q", class.ID, id)
			}
		}
		for _, id := range class.Abilities {
			if c.Abilities.GetByID(id) == nil {
				return nil, fmt.Errorf("class %s references unknown ability %q", class.ID, id)
			}
		}
	}
	return c, nil
}

// LoadCatalog loads all embedded content tables.
func LoadCatalog() (*Catalog, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.json")
	}
	attacks, err := LoadAttacks()
	if err != nil {
		return nil, err
	}
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	return NewCatalog(classes, attacks, abilities)
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Class returns the class definition with the given ID, or nil.
func (c *Catalog) Class(id string) *ClassDef {
	return c.Classes.GetByID(id)
}

// Attack returns the attack definition with the given ID, or nil.
func (c *Catalog) Attack(id string) *AttackDef {
	return c.Attacks.GetByID(id)
}

// Ability returns the ability definition with the given ID, or nil.
func (c *Catalog) Ability(id string) *AbilityDef {
	return c.Abilities.GetByID(id)
}
