// Package scenario assembles a playable world: systems, spawning from
// definitions, demo layouts and save conversion
package scenario

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/config"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/status"
	"github.com/lixenwraith/wick/system"
	"github.com/lixenwraith/wick/visual"
)

var (
	ErrUnknownDefinition = errors.New("scenario: unknown definition")
	ErrCellBlocked       = errors.New("scenario: cell blocked")
)

var crateGlyph = visual.NewVariantSet("crate", "#")

// AudioBackend plays fuse cues and sweeps loops once per step
type AudioBackend interface {
	fuse.Audio
	system.LoopSweeper
}

// Options configures a Sandbox
type Options struct {
	Width       int
	Height      int
	Seed        uint64
	Definitions *config.Definitions
	// Audio is optional
	Audio AudioBackend
	// Status is the metrics registry; pass the one given to the audio player
	// so its counters show up with the world's. Nil creates a private one
	Status *status.Registry
}

// Sandbox is a world with every fuse system registered
// Spawn and save calls mutate the world; wrap them in World.RunSafe while a
// scheduler is ticking
type Sandbox struct {
	World     *engine.World
	Fuse      *system.FuseSystem
	Explosion *system.ExplosionSystem

	mu   sync.RWMutex
	defs *config.Definitions
}

// New builds a sandbox; nil Definitions loads the built-in set
func New(opts Options) *Sandbox {
	defs := opts.Definitions
	if defs == nil {
		defs = config.DefaultDefinitions()
	}

	w := engine.NewWorldWithStatus(opts.Width, opts.Height, opts.Seed, opts.Status)
	var sweeper system.LoopSweeper
	if opts.Audio != nil {
		w.Resource.Audio = opts.Audio
		sweeper = opts.Audio
	}

	sb := &Sandbox{
		World:     w,
		Fuse:      system.NewFuseSystem(w),
		Explosion: system.NewExplosionSystem(w),
		defs:      defs,
	}

	w.AddSystem(system.NewCombatSystem(w))
	w.AddSystem(sb.Fuse)
	w.AddSystem(sb.Explosion)
	w.AddSystem(system.NewAlertSystem(w))
	w.AddSystem(system.NewDeathSystem(w))
	w.AddSystem(system.NewAudioSystem(w, sweeper))
	return sb
}

// Definitions returns the active definitions
func (sb *Sandbox) Definitions() *config.Definitions {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.defs
}

// ReloadDefinitions swaps the definitions and rebinds live fuses to the new
// props; fuses whose definition disappeared keep their old props
func (sb *Sandbox) ReloadDefinitions(defs *config.Definitions) int {
	sb.mu.Lock()
	sb.defs = defs
	sb.mu.Unlock()

	updated := 0
	sb.World.RunSafe(func() {
		updated = sb.Fuse.ApplyProps(func(name string) (*fuse.Props, bool) {
			def, ok := defs.Explosive(name)
			if !ok {
				return nil, false
			}
			return def.Props, true
		})
	})
	log.Printf("scenario: definitions reloaded, %d fuses rebound", updated)
	return updated
}

// Step runs one simulation tick
func (sb *Sandbox) Step() {
	sb.World.Update()
}

// placeable reports whether a solid entity may stand at p
func (sb *Sandbox) placeable(p core.Point) error {
	w := sb.World
	if !w.Terrain.InBounds(p) {
		return fmt.Errorf("%w: (%d,%d) out of bounds", ErrCellBlocked, p.X, p.Y)
	}
	if w.Terrain.IsWall(p) {
		return fmt.Errorf("%w: wall at (%d,%d)", ErrCellBlocked, p.X, p.Y)
	}
	for _, e := range w.Positions.EntitiesAt(p) {
		if w.Components.Combat.Has(e) {
			return fmt.Errorf("%w: entity %d at (%d,%d)", ErrCellBlocked, e, p.X, p.Y)
		}
	}
	return nil
}

// SpawnExplosive places an explosive of the named definition
func (sb *Sandbox) SpawnExplosive(name string, at core.Point, stack int) (core.Entity, error) {
	def, ok := sb.Definitions().Explosive(name)
	if !ok {
		return 0, fmt.Errorf("%w: explosive %q", ErrUnknownDefinition, name)
	}
	if err := sb.placeable(at); err != nil {
		return 0, err
	}

	w := sb.World
	e := w.CreateEntity()
	if err := w.Positions.Set(e, at); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%w: %v", ErrCellBlocked, err)
	}
	w.Components.Combat.Set(e, component.NewCombat(def.MaxHitPoints))
	w.Components.Stack.Set(e, component.StackComponent{Count: max(stack, 1)})
	w.Components.Glyph.Set(e, component.GlyphComponent{Set: def.Glyphs})
	w.AttachFuse(e, def.Props, def.Name)
	return e, nil
}

// SpawnAgent places an agent of the named definition
func (sb *Sandbox) SpawnAgent(name string, at core.Point) (core.Entity, error) {
	def, ok := sb.Definitions().Agent(name)
	if !ok {
		return 0, fmt.Errorf("%w: agent %q", ErrUnknownDefinition, name)
	}
	if err := sb.placeable(at); err != nil {
		return 0, err
	}

	w := sb.World
	e := w.CreateEntity()
	if err := w.Positions.Set(e, at); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%w: %v", ErrCellBlocked, err)
	}
	w.Components.Combat.Set(e, component.NewCombat(def.HitPoints))
	w.Components.Agent.Set(e, component.AgentComponent{Name: def.Name, Intelligence: def.Intelligence})
	w.Components.Glyph.Set(e, component.GlyphComponent{Set: def.Glyph})
	return e, nil
}

// SpawnCrate places an inert obstacle
func (sb *Sandbox) SpawnCrate(at core.Point) (core.Entity, error) {
	if err := sb.placeable(at); err != nil {
		return 0, err
	}
	w := sb.World
	e := w.CreateEntity()
	if err := w.Positions.Set(e, at); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%w: %v", ErrCellBlocked, err)
	}
	w.Components.Combat.Set(e, component.NewCombat(parameter.CrateHitPoints))
	w.Components.Glyph.Set(e, component.GlyphComponent{Set: crateGlyph})
	return e, nil
}

// SolidAt returns the entity with hit points standing at p
func (sb *Sandbox) SolidAt(p core.Point) (core.Entity, bool) {
	for _, e := range sb.World.Positions.EntitiesAt(p) {
		if sb.World.Components.Combat.Has(e) {
			return e, true
		}
	}
	return 0, false
}

// Command queues a fuse order for the next dispatch
func (sb *Sandbox) Command(e core.Entity, cmd event.FuseCommand) {
	event.EmitFuseCommand(sb.World.Events(), e, cmd, sb.World.FrameNumber())
}

// Damage queues an attack with no source entity
func (sb *Sandbox) Damage(e core.Entity, kind fuse.DamageKind, amount int) {
	event.EmitAttack(sb.World.Events(), e, 0, fuse.NewDamage(kind, amount), sb.World.FrameNumber())
}

// ToggleSystem enables or disables a system by name
func (sb *Sandbox) ToggleSystem(name string, enabled bool) {
	sb.World.PushEvent(event.EventMetaSystemCommandRequest, &event.MetaSystemCommandPayload{
		SystemName: name,
		Enabled:    enabled,
	})
}
