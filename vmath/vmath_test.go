package vmath

import (
	"testing"

	"github.com/lixenwraith/wick/core"
)

func TestNumCellsInRadius(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{-1, 0},
		{0, 1},
		{1, 5},
		{1.5, 9},
		{3.9, 45},
		{4.5, 69},
	}
	for _, tt := range tests {
		if got := NumCellsInRadius(tt.radius); got != tt.want {
			t.Errorf("NumCellsInRadius(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestRadialPattern_NearestFirst(t *testing.T) {
	p := RadialPattern(4.5)
	if len(p) != NumCellsInRadius(4.5) {
		t.Fatalf("len = %d, want %d", len(p), NumCellsInRadius(4.5))
	}
	if p[0] != (core.Point{}) {
		t.Errorf("first offset = %v, want origin", p[0])
	}
	prev := 0
	for _, off := range p {
		d := off.DistSq(core.Point{})
		if d < prev {
			t.Fatalf("offset %v out of order", off)
		}
		prev = d
	}
	if RadialPattern(-1) != nil {
		t.Error("negative radius should yield no cells")
	}
}

func TestClearPath(t *testing.T) {
	wall := core.Point{X: 3, Y: 0}
	opaque := func(p core.Point) bool { return p == wall }

	if ClearPath(core.Point{X: 0, Y: 0}, core.Point{X: 6, Y: 0}, opaque) {
		t.Error("wall between endpoints should block")
	}
	if !ClearPath(core.Point{X: 0, Y: 2}, core.Point{X: 6, Y: 2}, opaque) {
		t.Error("parallel row should be clear")
	}
	if !ClearPath(core.Point{X: 0, Y: 0}, wall, opaque) {
		t.Error("endpoints are never tested")
	}
	if !ClearPath(wall, wall, opaque) {
		t.Error("a cell sees itself")
	}
}

func TestFastRand_IntRange(t *testing.T) {
	r := NewFastRand(42)
	for range 1000 {
		v := r.IntRange(70, 150)
		if v < 70 || v > 150 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
	}
	if v := r.IntRange(5, 5); v != 5 {
		t.Errorf("degenerate range = %d", v)
	}
	a, b := NewFastRand(9), NewFastRand(9)
	for range 10 {
		if a.Next() != b.Next() {
			t.Fatal("same seed must give same sequence")
		}
	}
}
