package main

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wick/config"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/scenario"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(40, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Config{Width: 30, Height: 16, Seed: 5, SavePath: filepath.Join(t.TempDir(), "save.yaml")}
	sb := scenario.New(scenario.Options{Width: cfg.Width, Height: cfg.Height, Seed: cfg.Seed})
	return newApp(cfg, screen, sb, nil, nil)
}

func TestApply_PlaceAndArm(t *testing.T) {
	a := newTestApp(t)
	a.cursor = core.Point{X: 5, Y: 5}

	a.apply(actionPlaceExplosive)
	e, ok := a.sb.SolidAt(a.cursor)
	if !ok {
		t.Fatalf("nothing placed, message %q", a.message)
	}

	a.apply(actionArm)
	a.sb.Step()

	fc, _ := a.sb.World.Components.Fuse.Get(e)
	if got := fc.Machine.State(); got != fuse.StateArmedAudible {
		t.Errorf("state = %v, want armed", got)
	}

	a.apply(actionDisarm)
	a.sb.Step()
	if got := fc.Machine.State(); got != fuse.StateIdle {
		t.Errorf("state after disarm = %v", got)
	}
}

func TestApply_BlockedPlacementReports(t *testing.T) {
	a := newTestApp(t)
	a.cursor = core.Point{X: 3, Y: 3}

	a.apply(actionToggleWall)
	if !a.sb.World.Terrain.IsWall(a.cursor) {
		t.Fatal("wall not placed")
	}
	a.apply(actionPlaceCrate)
	if a.message != "cell blocked" {
		t.Errorf("message = %q", a.message)
	}
}

func TestApply_CursorClamped(t *testing.T) {
	a := newTestApp(t)
	a.cursor = core.Point{}
	a.apply(actionLeft)
	a.apply(actionUp)
	if a.cursor != (core.Point{}) {
		t.Errorf("cursor left the grid: %v", a.cursor)
	}
	if !a.apply(actionRight) || a.apply(actionQuit) {
		t.Error("only quit should stop the loop")
	}
}

func TestApply_SaveAndLoad(t *testing.T) {
	a := newTestApp(t)
	a.cursor = core.Point{X: 7, Y: 4}
	a.apply(actionPlaceAgent)
	a.apply(actionSave)

	a.apply(actionClear)
	if _, ok := a.sb.SolidAt(a.cursor); ok {
		t.Fatal("clear left the agent")
	}

	a.apply(actionLoad)
	if _, ok := a.sb.SolidAt(a.cursor); !ok {
		t.Errorf("agent not restored, message %q", a.message)
	}
}

func TestDraw_ShowsEntitiesAndStatus(t *testing.T) {
	a := newTestApp(t)
	a.cursor = core.Point{X: 10, Y: 10}
	a.apply(actionPlaceCrate)
	a.sb.World.Terrain.SetWall(core.Point{X: 2, Y: 2}, true)

	a.draw()

	if ch, _, _, _ := a.screen.GetContent(10, 10); ch != '#' {
		t.Errorf("crate rune = %q", ch)
	}
	if ch, _, _, _ := a.screen.GetContent(2, 2); ch != wallRune {
		t.Errorf("wall rune = %q", ch)
	}
	if ch, _, _, _ := a.screen.GetContent(0, 16); ch != '(' {
		t.Errorf("status row starts with %q", ch)
	}
}
