package scenario

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/persist"
)

// ErrSaveMismatch is returned when a save was made for another grid size
var ErrSaveMismatch = errors.New("scenario: save grid size differs")

// Capture converts the world into a save
func (sb *Sandbox) Capture() *persist.SaveGame {
	w := sb.World
	cfg := w.Resource.Config
	g := &persist.SaveGame{
		Version: persist.Version,
		Frame:   w.FrameNumber(),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
		Walls:   w.Terrain.Walls(),
	}

	for _, e := range w.Components.Fuse.All() {
		fc, _ := w.Components.Fuse.Get(e)
		pos, onGrid := w.Positions.Get(e)
		if fc.Machine == nil || fc.Machine.Detonated() || !onGrid {
			continue
		}
		combat, _ := w.Components.Combat.Get(e)
		stack, _ := w.Components.Stack.Get(e)
		g.Explosives = append(g.Explosives, persist.ExplosiveRecord{
			Definition: fc.Definition,
			Position:   pos,
			HitPoints:  combat.HitPoints,
			Stack:      stack.Count,
			Fuse:       fc.Machine.Snapshot(),
		})
	}

	for _, e := range w.Components.Agent.All() {
		a, _ := w.Components.Agent.Get(e)
		pos, onGrid := w.Positions.Get(e)
		if !onGrid {
			continue
		}
		combat, _ := w.Components.Combat.Get(e)
		g.Agents = append(g.Agents, persist.AgentRecord{
			Definition: a.Name,
			Position:   pos,
			HitPoints:  combat.HitPoints,
		})
	}

	for _, e := range w.Components.Combat.All() {
		if w.Components.Fuse.Has(e) || w.Components.Agent.Has(e) {
			continue
		}
		pos, onGrid := w.Positions.Get(e)
		if !onGrid {
			continue
		}
		combat, _ := w.Components.Combat.Get(e)
		g.Crates = append(g.Crates, persist.CrateRecord{Position: pos, HitPoints: combat.HitPoints})
	}
	return g
}

// Restore replaces the world contents with a save. Fuses resume their
// timers without warning agents again. Records that cannot be placed are
// logged and skipped. Restore takes the update lock itself
func (sb *Sandbox) Restore(g *persist.SaveGame) error {
	cfg := sb.World.Resource.Config
	if g.Width != cfg.Width || g.Height != cfg.Height {
		return fmt.Errorf("%w: save %dx%d, world %dx%d", ErrSaveMismatch, g.Width, g.Height, cfg.Width, cfg.Height)
	}

	sb.World.Reset()

	var skipped int
	sb.World.RunSafe(func() {
		w := sb.World
		for _, p := range g.Walls {
			w.Terrain.SetWall(p, true)
		}

		for _, rec := range g.Explosives {
			e, err := sb.SpawnExplosive(rec.Definition, rec.Position, rec.Stack)
			if err != nil {
				log.Printf("scenario: restore explosive: %v", err)
				skipped++
				continue
			}
			sb.setHitPoints(e, rec.HitPoints)
			if fc, ok := w.Components.Fuse.Get(e); ok {
				fc.Machine.Restore(rec.Fuse)
			}
		}

		for _, rec := range g.Agents {
			e, err := sb.SpawnAgent(rec.Definition, rec.Position)
			if err != nil {
				log.Printf("scenario: restore agent: %v", err)
				skipped++
				continue
			}
			sb.setHitPoints(e, rec.HitPoints)
		}

		for _, rec := range g.Crates {
			e, err := sb.SpawnCrate(rec.Position)
			if err != nil {
				log.Printf("scenario: restore crate: %v", err)
				skipped++
				continue
			}
			sb.setHitPoints(e, rec.HitPoints)
		}

		w.SetFrameNumber(g.Frame)
	})

	if skipped > 0 {
		log.Printf("scenario: restore skipped %d records", skipped)
	}
	return nil
}

func (sb *Sandbox) setHitPoints(e core.Entity, hp int) {
	sb.World.Components.Combat.Update(e, func(c *component.CombatComponent) {
		if hp > 0 && hp <= c.MaxHitPoints {
			c.HitPoints = hp
		}
	})
}

// SaveTo captures the world under the update lock and writes it to path
func (sb *Sandbox) SaveTo(path string) error {
	var g *persist.SaveGame
	sb.World.RunSafe(func() { g = sb.Capture() })
	if err := persist.Save(path, g); err != nil {
		return err
	}
	log.Printf("scenario: saved frame %d to %s", g.Frame, path)
	return nil
}

// LoadFrom reads a save and restores it; the caller must not hold the
// update lock
func (sb *Sandbox) LoadFrom(path string) error {
	g, err := persist.Load(path)
	if err != nil {
		return err
	}
	return sb.Restore(g)
}
