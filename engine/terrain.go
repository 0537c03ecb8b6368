package engine

import (
	"sync"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/vmath"
)

var neighbors4 = [4]core.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Terrain is the static layer: bounds, walls and the rooms they enclose
// Rooms are 4-connected regions of open cells, recomputed lazily after edits
type Terrain struct {
	mu     sync.RWMutex
	width  int
	height int
	walls  []bool
	rooms  []fuse.RoomID
	count  int
	dirty  bool
}

// NewTerrain creates an open width x height area
func NewTerrain(width, height int) *Terrain {
	return &Terrain{
		width:  width,
		height: height,
		walls:  make([]bool, width*height),
		rooms:  make([]fuse.RoomID, width*height),
		dirty:  true,
	}
}

// Size returns the grid dimensions
func (t *Terrain) Size() (int, int) { return t.width, t.height }

// InBounds reports whether p lies on the grid
func (t *Terrain) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < t.width && p.Y >= 0 && p.Y < t.height
}

// SetWall places or clears a wall, out of bounds is ignored
func (t *Terrain) SetWall(p core.Point, wall bool) {
	if !t.InBounds(p) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := p.Y*t.width + p.X
	if t.walls[idx] != wall {
		t.walls[idx] = wall
		t.dirty = true
	}
}

// IsWall reports a wall at p; everything outside the grid is solid
func (t *Terrain) IsWall(p core.Point) bool {
	if !t.InBounds(p) {
		return true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.walls[p.Y*t.width+p.X]
}

// Walls lists every wall cell in row-major order
func (t *Terrain) Walls() []core.Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []core.Point
	for i, w := range t.walls {
		if w {
			out = append(out, core.Point{X: i % t.width, Y: i / t.width})
		}
	}
	return out
}

// ClearWalls removes every wall
func (t *Terrain) ClearWalls() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.walls)
	t.dirty = true
}

// RoomAt returns the room containing p, NoRoom for walls and off-grid cells
func (t *Terrain) RoomAt(p core.Point) fuse.RoomID {
	if !t.InBounds(p) {
		return fuse.NoRoom
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.rebuildRooms()
	}
	return t.rooms[p.Y*t.width+p.X]
}

// RoomCount returns the number of distinct rooms
func (t *Terrain) RoomCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.rebuildRooms()
	}
	return t.count
}

// LineOfSight reports whether no wall lies strictly between a and b
func (t *Terrain) LineOfSight(a, b core.Point) bool {
	return vmath.ClearPath(a, b, t.IsWall)
}

// rebuildRooms flood fills open cells in row-major seed order, caller holds mu
func (t *Terrain) rebuildRooms() {
	for i := range t.rooms {
		t.rooms[i] = fuse.NoRoom
	}
	next := fuse.RoomID(0)
	queue := make([]int, 0, 64)

	for seed := range t.walls {
		if t.walls[seed] || t.rooms[seed] != fuse.NoRoom {
			continue
		}
		t.rooms[seed] = next
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			p := core.Point{X: idx % t.width, Y: idx / t.width}
			for _, d := range neighbors4 {
				n := p.Add(d)
				if !t.InBounds(n) {
					continue
				}
				nIdx := n.Y*t.width + n.X
				if t.walls[nIdx] || t.rooms[nIdx] != fuse.NoRoom {
					continue
				}
				t.rooms[nIdx] = next
				queue = append(queue, nIdx)
			}
		}
		next++
	}
	t.count = int(next)
	t.dirty = false
}
