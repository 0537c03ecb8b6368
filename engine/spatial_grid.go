package engine

import (
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/parameter"
)

// Cell represents a single grid cell containing a fixed number of entities
// It is a value type designed for contiguous memory layout
type Cell struct {
	Count    uint8
	_        [7]byte // Explicit padding to ensure 8-byte alignment for Entities
	Entities [parameter.MaxEntitiesPerCell]core.Entity
}

// SpatialGrid is a dense 2D grid for fast spatial queries without allocation
type SpatialGrid struct {
	Width  int
	Height int
	Cells  []Cell // 1D array: index = y*Width + x
}

// NewSpatialGrid creates a new grid with the specified dimensions
func NewSpatialGrid(width, height int) *SpatialGrid {
	return &SpatialGrid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

func (g *SpatialGrid) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Add inserts an entity into the grid at p
// O(1), Returns false if bounds invalid or cell full (soft clip)
func (g *SpatialGrid) Add(e core.Entity, p core.Point) bool {
	if !g.inBounds(p) {
		return false
	}

	cell := &g.Cells[p.Y*g.Width+p.X]
	if cell.Count < parameter.MaxEntitiesPerCell {
		cell.Entities[cell.Count] = e
		cell.Count++
		return true
	}
	return false
}

// Remove deletes an entity from the grid at p
// O(k) where k <= 15, shifts later entries down to keep arrival order
func (g *SpatialGrid) Remove(e core.Entity, p core.Point) {
	if !g.inBounds(p) {
		return
	}

	cell := &g.Cells[p.Y*g.Width+p.X]
	for i := uint8(0); i < cell.Count; i++ {
		if cell.Entities[i] == e {
			copy(cell.Entities[i:cell.Count], cell.Entities[i+1:cell.Count])
			cell.Count--
			cell.Entities[cell.Count] = 0
			return
		}
	}
}

// GetAllAt returns a slice view of entities at p
// INTERNAL USE ONLY - callers must copy or hold external lock
func (g *SpatialGrid) GetAllAt(p core.Point) []core.Entity {
	if !g.inBounds(p) {
		return nil
	}

	cell := &g.Cells[p.Y*g.Width+p.X]
	if cell.Count == 0 {
		return nil
	}
	return cell.Entities[:cell.Count]
}

// HasAny returns true if there is at least one entity at p. O(1)
func (g *SpatialGrid) HasAny(p core.Point) bool {
	if !g.inBounds(p) {
		return false
	}
	return g.Cells[p.Y*g.Width+p.X].Count > 0
}

// Clear removes all entities from all cells
func (g *SpatialGrid) Clear() {
	for i := range g.Cells {
		g.Cells[i].Count = 0
	}
}
