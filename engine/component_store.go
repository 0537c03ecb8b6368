package engine

import (
	"github.com/lixenwraith/wick/component"
)

// ComponentStore provides cached pointers to typed component stores
// Initialized once per world; pointers remain valid for the world's lifetime
type ComponentStore struct {
	Combat *Store[component.CombatComponent]
	Fuse   *Store[component.FuseComponent]
	Stack  *Store[component.StackComponent]
	Agent  *Store[component.AgentComponent]
	Glyph  *Store[component.GlyphComponent]
	Debris *Store[component.DebrisComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Combat: NewStore[component.CombatComponent](),
		Fuse:   NewStore[component.FuseComponent](),
		Stack:  NewStore[component.StackComponent](),
		Agent:  NewStore[component.AgentComponent](),
		Glyph:  NewStore[component.GlyphComponent](),
		Debris: NewStore[component.DebrisComponent](),
	}
}

// all lists every store for uniform lifecycle operations
func (cs ComponentStore) all() []AnyStore {
	return []AnyStore{cs.Combat, cs.Fuse, cs.Stack, cs.Agent, cs.Glyph, cs.Debris}
}
