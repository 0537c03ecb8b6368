package system

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/status"
	"github.com/lixenwraith/wick/vmath"
)

// Blast is a resolved explosion kept for rendering
type Blast struct {
	Center    core.Point
	Radius    float64
	Kind      fuse.DamageKind
	Remaining int // ticks until the blast fades
}

// ExplosionSystem resolves area effects into per-target attack requests
type ExplosionSystem struct {
	world *engine.World

	mu       sync.RWMutex
	blasts   []Blast
	patterns map[int][]core.Point // by squared radius limit

	statCount     *atomic.Int64
	statTargets   *atomic.Int64
	statMaxRadius *status.AtomicFloat

	enabled bool
}

func NewExplosionSystem(world *engine.World) *ExplosionSystem {
	s := &ExplosionSystem{
		world: world,
	}

	s.statCount = world.Resource.Status.Ints.Get("explosion.count")
	s.statTargets = world.Resource.Status.Ints.Get("explosion.targets")
	s.statMaxRadius = world.Resource.Status.Floats.Get("explosion.max_radius")

	s.Init()
	return s
}

func (s *ExplosionSystem) Init() {
	s.mu.Lock()
	s.blasts = make([]Blast, 0, parameter.ExplosionCap)
	s.mu.Unlock()
	s.patterns = make(map[int][]core.Point)
	s.enabled = true
}

// Name returns system's name
func (s *ExplosionSystem) Name() string {
	return "explosion"
}

func (s *ExplosionSystem) Priority() int {
	return parameter.PriorityExplosion
}

func (s *ExplosionSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventExplosionRequest,
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *ExplosionSystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventExplosionRequest {
		if p, ok := ev.Payload.(*event.ExplosionRequestPayload); ok {
			s.explode(p)
		}
	}
}

// explode damages every combat entity within radius and in line of sight of
// the center; damage falls off linearly toward the rim
func (s *ExplosionSystem) explode(p *event.ExplosionRequestPayload) {
	s.statCount.Add(1)
	s.statMaxRadius.StoreMax(p.Radius)
	s.track(Blast{Center: p.Center, Radius: p.Radius, Kind: p.Kind, Remaining: parameter.ExplosionLingerTicks})

	if audio := s.world.Resource.Audio; audio != nil {
		audio.PlayOneShot(fuse.CueDetonation, p.Center)
	}

	terrain := s.world.Terrain
	frame := s.world.FrameNumber()
	for _, offset := range s.pattern(p.Radius) {
		cell := p.Center.Add(offset)
		if !terrain.InBounds(cell) || terrain.IsWall(cell) {
			continue
		}
		if !terrain.LineOfSight(p.Center, cell) {
			continue
		}
		for _, e := range s.world.Positions.EntitiesAt(cell) {
			if e == p.Source || !s.world.Components.Combat.Has(e) {
				continue
			}
			amount := BlastDamage(offset.DistSq(core.Point{}), p.Radius)
			event.EmitAttack(s.world.Events(), e, p.Source, fuse.NewDamage(p.Kind, amount), frame)
			s.statTargets.Add(1)
		}
	}
}

// BlastDamage is the damage dealt at squared distance distSq from the center
func BlastDamage(distSq int, radius float64) int {
	if radius <= 0 {
		return parameter.ExplosionCenterDamage
	}
	t := min(math.Sqrt(float64(distSq))/radius, 1)
	scale := 1 - t*(1-parameter.ExplosionEdgeDamageFraction)
	return max(int(float64(parameter.ExplosionCenterDamage)*scale+0.5), 1)
}

// pattern caches offsets per squared limit; radii sharing a limit cover the
// same cells
func (s *ExplosionSystem) pattern(radius float64) []core.Point {
	limit := vmath.RadiusSqLimit(radius)
	if p, ok := s.patterns[limit]; ok {
		return p
	}
	p := vmath.RadialPattern(radius)
	s.patterns[limit] = p
	return p
}

// CachedPatterns returns the number of distinct blast shapes cached
func (s *ExplosionSystem) CachedPatterns() int {
	return len(s.patterns)
}

func (s *ExplosionSystem) track(b Blast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.blasts) >= parameter.ExplosionCap {
		copy(s.blasts, s.blasts[1:])
		s.blasts = s.blasts[:len(s.blasts)-1]
	}
	s.blasts = append(s.blasts, b)
}

// Blasts returns a copy of the visible blasts
func (s *ExplosionSystem) Blasts() []Blast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Blast(nil), s.blasts...)
}

// Update ages blasts and drops faded ones
func (s *ExplosionSystem) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	write := 0
	for i := range s.blasts {
		s.blasts[i].Remaining--
		if s.blasts[i].Remaining > 0 {
			s.blasts[write] = s.blasts[i]
			write++
		}
	}
	s.blasts = s.blasts[:write]
}
