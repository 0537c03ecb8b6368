package system

import (
	"sync/atomic"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/parameter"
)

// CombatSystem applies damage and feeds it to fuse machines
type CombatSystem struct {
	world *engine.World

	statHits   *atomic.Int64
	statDamage *atomic.Int64

	enabled bool
}

func NewCombatSystem(world *engine.World) engine.System {
	s := &CombatSystem{
		world: world,
	}

	s.statHits = world.Resource.Status.Ints.Get("combat.hits")
	s.statDamage = world.Resource.Status.Ints.Get("combat.damage")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *CombatSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *CombatSystem) Name() string {
	return "combat"
}

func (s *CombatSystem) Priority() int {
	return parameter.PriorityCombat
}

func (s *CombatSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAttackRequest,
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *CombatSystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventAttackRequest {
		if p, ok := ev.Payload.(*event.AttackRequestPayload); ok {
			if s.enabled {
				s.applyAttack(p)
			}
			event.ReleaseAttackRequest(p)
		}
	}
}

// applyAttack subtracts hit points, then lets a fuse react to the result
// Dead entities are removed in kill mode unless their fuse already did it
func (s *CombatSystem) applyAttack(p *event.AttackRequestPayload) {
	if !s.world.IsAlive(p.Target) {
		return
	}

	var hp int
	ok := s.world.Components.Combat.Update(p.Target, func(c *component.CombatComponent) {
		c.HitPoints = max(c.HitPoints-max(p.Damage.Amount, 0), 0)
		c.LastHitFrame = s.world.FrameNumber()
		hp = c.HitPoints
	})
	if !ok {
		return
	}
	s.statHits.Add(1)
	s.statDamage.Add(int64(max(p.Damage.Amount, 0)))

	detonated := false
	if fc, ok := s.world.Components.Fuse.Get(p.Target); ok && fc.Machine != nil {
		fc.Machine.OnDamage(p.Damage, hp)
		detonated = fc.Machine.Detonated()
	}

	if hp <= 0 && !detonated {
		s.world.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{
			Entity: p.Target,
			Mode:   core.DestroyKill,
		})
	}
}

// Update has no per-tick work; damage arrives through events
func (s *CombatSystem) Update() {}
