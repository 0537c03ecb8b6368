package system

import (
	"sync/atomic"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/visual"
)

var debrisGlyph = visual.NewVariantSet("debris", "*")

// DeathSystem removes entities; killed ones leave short-lived debris
type DeathSystem struct {
	world *engine.World

	statKilled   *atomic.Int64
	statVanished *atomic.Int64

	enabled bool
}

func NewDeathSystem(world *engine.World) engine.System {
	s := &DeathSystem{
		world: world,
	}

	s.statKilled = world.Resource.Status.Ints.Get("death.kill")
	s.statVanished = world.Resource.Status.Ints.Get("death.vanish")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *DeathSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *DeathSystem) Name() string {
	return "death"
}

func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

func (s *DeathSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDeathRequest,
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *DeathSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventWorldReset {
		s.Init()
		return
	}

	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	if !s.enabled {
		return
	}

	if ev.Type == event.EventDeathRequest {
		if p, ok := ev.Payload.(*event.DeathRequestPayload); ok {
			s.destroy(p.Entity, p.Mode)
		}
	}
}

// destroy removes the entity; repeated requests for the same entity are no-ops
func (s *DeathSystem) destroy(e core.Entity, mode core.DestroyMode) {
	if e == 0 || !s.world.IsAlive(e) {
		return
	}

	pos, onGrid := s.world.Positions.Get(e)
	leavesDebris := mode == core.DestroyKill && onGrid && !s.world.Components.Debris.Has(e)

	s.world.DestroyEntity(e)

	switch mode {
	case core.DestroyKill:
		s.statKilled.Add(1)
	default:
		s.statVanished.Add(1)
	}

	if leavesDebris {
		s.spawnDebris(pos)
	}
}

func (s *DeathSystem) spawnDebris(at core.Point) {
	d := s.world.CreateEntity()
	if err := s.world.Positions.Set(d, at); err != nil {
		s.world.DestroyEntity(d)
		return
	}
	s.world.Components.Debris.Set(d, component.DebrisComponent{Remaining: parameter.DebrisTicks})
	s.world.Components.Glyph.Set(d, component.GlyphComponent{Set: debrisGlyph})
}

// Update expires debris
func (s *DeathSystem) Update() {
	for _, e := range s.world.Components.Debris.All() {
		expired := false
		s.world.Components.Debris.Update(e, func(d *component.DebrisComponent) {
			d.Remaining--
			expired = d.Remaining <= 0
		})
		if expired {
			s.world.DestroyEntity(e)
		}
	}
}
