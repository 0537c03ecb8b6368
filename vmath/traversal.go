package vmath

import (
	"math"

	"github.com/lixenwraith/wick/core"
)

// GridTraverser is a zero-allocation Supercover DDA iterator over every cell
// a segment touches, endpoints included
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     int64
	tDeltaX, tDeltaY int64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator from (x1, y1) to (x2, y2) in Q32.32
func NewGridTraverser(x1, y1, x2, y2 int64) GridTraverser {
	t := GridTraverser{
		currX: ToInt(x1), currY: ToInt(y1),
		targetX: ToInt(x2), targetY: ToInt(y2),
	}

	dx := x2 - x1
	dy := y2 - y1

	t.stepX, t.stepY = 1, 1
	if dx < 0 {
		t.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
	}

	if dx == 0 {
		t.tMaxX = math.MaxInt64
	} else {
		t.tDeltaX = Div(Scale, dx)
		if t.stepX > 0 {
			t.tMaxX = Mul(Scale-(x1&Mask), t.tDeltaX)
		} else {
			t.tMaxX = Mul(x1&Mask, t.tDeltaX)
		}
	}

	if dy == 0 {
		t.tMaxY = math.MaxInt64
	} else {
		t.tDeltaY = Div(Scale, dy)
		if t.stepY > 0 {
			t.tMaxY = Mul(Scale-(y1&Mask), t.tDeltaY)
		} else {
			t.tMaxY = Mul(y1&Mask, t.tDeltaY)
		}
	}

	return t
}

// NewCellTraverser walks from the center of cell a to the center of cell b
func NewCellTraverser(a, b core.Point) GridTraverser {
	return NewGridTraverser(CellCenter(a.X), CellCenter(a.Y), CellCenter(b.X), CellCenter(b.Y))
}

// Next advances to the next cell, false once the target has been yielded
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	if t.tMaxX < t.tMaxY {
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		} else {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	} else if t.tMaxX > t.tMaxY {
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		} else {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
	} else {
		// Exact corner crossing, step diagonally
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	}

	return true
}

// Pos returns the current cell
func (t *GridTraverser) Pos() core.Point {
	return core.Point{X: t.currX, Y: t.currY}
}

// ClearPath reports whether no cell strictly between a and b is opaque
// Endpoints are never tested: the viewer and the target may stand in
// cells that would otherwise block
func ClearPath(a, b core.Point, opaque func(p core.Point) bool) bool {
	if a == b {
		return true
	}
	t := NewCellTraverser(a, b)
	for t.Next() {
		p := t.Pos()
		if p == a || p == b {
			continue
		}
		if opaque(p) {
			return false
		}
	}
	return true
}
