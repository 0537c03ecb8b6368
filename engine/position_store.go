package engine

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/wick/core"
)

// PositionStore keeps entity cells and the reverse spatial index in step
type PositionStore struct {
	mu        sync.RWMutex
	positions map[core.Entity]core.Point
	grid      *SpatialGrid
}

// NewPositionStore creates a store for a width x height grid
func NewPositionStore(width, height int) *PositionStore {
	return &PositionStore{
		positions: make(map[core.Entity]core.Point),
		grid:      NewSpatialGrid(width, height),
	}
}

// Set places or moves an entity, an error if the target is out of bounds or full
func (ps *PositionStore) Set(e core.Entity, p core.Point) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	old, had := ps.positions[e]
	if had {
		if old == p {
			return nil
		}
		ps.grid.Remove(e, old)
	}
	if !ps.grid.Add(e, p) {
		if had {
			ps.grid.Add(e, old)
		}
		return fmt.Errorf("position (%d,%d): cell unavailable", p.X, p.Y)
	}
	ps.positions[e] = p
	return nil
}

// Get returns the entity's cell
func (ps *PositionStore) Get(e core.Entity) (core.Point, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	p, ok := ps.positions[e]
	return p, ok
}

// Remove takes the entity off the grid
func (ps *PositionStore) Remove(e core.Entity) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.positions[e]; ok {
		ps.grid.Remove(e, p)
		delete(ps.positions, e)
	}
}

// Has reports whether the entity is on the grid
func (ps *PositionStore) Has(e core.Entity) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	_, ok := ps.positions[e]
	return ok
}

// EntitiesAt returns a copy of the entities in a cell, in arrival order
func (ps *PositionStore) EntitiesAt(p core.Point) []core.Entity {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	view := ps.grid.GetAllAt(p)
	if len(view) == 0 {
		return nil
	}
	out := make([]core.Entity, len(view))
	copy(out, view)
	return out
}

// HasAny reports whether a cell is occupied
func (ps *PositionStore) HasAny(p core.Point) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.grid.HasAny(p)
}

// Count returns number of positioned entities
func (ps *PositionStore) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.positions)
}

// Clear removes every position
func (ps *PositionStore) Clear() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.positions = make(map[core.Entity]core.Point)
	ps.grid.Clear()
}
