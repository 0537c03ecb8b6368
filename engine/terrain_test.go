package engine

import (
	"testing"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

// splitTerrain builds a 9x5 area with a full-height wall at x=4
func splitTerrain() *Terrain {
	t := NewTerrain(9, 5)
	for y := 0; y < 5; y++ {
		t.SetWall(core.Point{X: 4, Y: y}, true)
	}
	return t
}

func TestTerrain_Rooms(t *testing.T) {
	tr := splitTerrain()

	left := tr.RoomAt(core.Point{X: 0, Y: 0})
	right := tr.RoomAt(core.Point{X: 8, Y: 4})
	if left == fuse.NoRoom || right == fuse.NoRoom || left == right {
		t.Fatalf("rooms left=%d right=%d, want two distinct rooms", left, right)
	}
	if tr.RoomCount() != 2 {
		t.Errorf("RoomCount = %d, want 2", tr.RoomCount())
	}
	if got := tr.RoomAt(core.Point{X: 4, Y: 2}); got != fuse.NoRoom {
		t.Errorf("wall cell room = %d, want NoRoom", got)
	}
	if got := tr.RoomAt(core.Point{X: -1, Y: 0}); got != fuse.NoRoom {
		t.Errorf("off-grid room = %d, want NoRoom", got)
	}

	// Opening a door merges the rooms
	tr.SetWall(core.Point{X: 4, Y: 2}, false)
	if tr.RoomCount() != 1 {
		t.Errorf("RoomCount after door = %d, want 1", tr.RoomCount())
	}
	if tr.RoomAt(core.Point{X: 0, Y: 0}) != tr.RoomAt(core.Point{X: 8, Y: 4}) {
		t.Error("door did not merge rooms")
	}
}

func TestTerrain_LineOfSight(t *testing.T) {
	tr := splitTerrain()
	if tr.LineOfSight(core.Point{X: 1, Y: 2}, core.Point{X: 7, Y: 2}) {
		t.Error("sight passes through wall")
	}
	if !tr.LineOfSight(core.Point{X: 0, Y: 0}, core.Point{X: 3, Y: 4}) {
		t.Error("open line blocked")
	}
	// Endpoints are never tested, a wall endpoint does not block
	if !tr.LineOfSight(core.Point{X: 3, Y: 2}, core.Point{X: 4, Y: 2}) {
		t.Error("adjacent wall endpoint blocked sight")
	}
}

func TestTerrain_WallsAndClear(t *testing.T) {
	tr := splitTerrain()
	if n := len(tr.Walls()); n != 5 {
		t.Errorf("Walls = %d, want 5", n)
	}
	if !tr.IsWall(core.Point{X: 100, Y: 0}) {
		t.Error("off-grid should be solid")
	}
	tr.ClearWalls()
	if len(tr.Walls()) != 0 || tr.RoomCount() != 1 {
		t.Error("ClearWalls left walls or rooms behind")
	}
}
