package engine

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/status"
)

// AttachFuse gives an entity a fuse built from props and returns the machine
// The entity should already carry combat and position data
func (w *World) AttachFuse(e core.Entity, props *fuse.Props, definition string) *fuse.Machine {
	m := fuse.NewMachine(props, fuseHost{w: w, e: e}, w.FuseDeps())
	w.Components.Fuse.Set(e, component.FuseComponent{Machine: m, Definition: definition})
	return m
}

// FuseDeps wires fuse machines to this world
func (w *World) FuseDeps() fuse.Deps {
	deps := fuse.Deps{
		Effects:  worldEffects{w: w},
		Notifier: w.notifier,
		Rand:     w.Resource.Rand,
		Observer: w.observer,
	}
	if w.Resource.Audio != nil {
		deps.Audio = w.Resource.Audio
	}
	return deps
}

// Notifier returns the shared alert broadcaster
func (w *World) Notifier() *fuse.Notifier {
	return w.notifier
}

// fuseHost adapts an entity to fuse.Host
type fuseHost struct {
	w *World
	e core.Entity
}

func (h fuseHost) Entity() core.Entity { return h.e }

func (h fuseHost) Position() (core.Point, bool) {
	return h.w.Positions.Get(h.e)
}

func (h fuseHost) MaxHitPoints() int {
	if c, ok := h.w.Components.Combat.Get(h.e); ok {
		return c.MaxHitPoints
	}
	return 0
}

func (h fuseHost) StackCount() int {
	if s, ok := h.w.Components.Stack.Get(h.e); ok && s.Count > 0 {
		return s.Count
	}
	return 1
}

func (h fuseHost) Destroyed() bool {
	return !h.w.IsAlive(h.e)
}

// worldEffects routes destruction and blasts through the event queue
type worldEffects struct {
	w *World
}

func (fx worldEffects) Destroy(e core.Entity, mode core.DestroyMode) {
	fx.w.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{Entity: e, Mode: mode})
}

func (fx worldEffects) Explode(at core.Point, radius float64, kind fuse.DamageKind, source core.Entity) {
	fx.w.PushEvent(event.EventExplosionRequest, &event.ExplosionRequestPayload{
		Center: at,
		Radius: radius,
		Kind:   kind,
		Source: source,
	})
}

// worldSpatial answers the alert broadcast's grid queries
type worldSpatial struct {
	w *World
}

func (s worldSpatial) InBounds(p core.Point) bool { return s.w.Terrain.InBounds(p) }

func (s worldSpatial) RoomAt(p core.Point) fuse.RoomID { return s.w.Terrain.RoomAt(p) }

func (s worldSpatial) LineOfSight(from, to core.Point) bool {
	return s.w.Terrain.LineOfSight(from, to)
}

func (s worldSpatial) OccupantsAt(p core.Point) []fuse.Occupant {
	entities := s.w.Positions.EntitiesAt(p)
	if len(entities) == 0 {
		return nil
	}
	out := make([]fuse.Occupant, 0, len(entities))
	for _, e := range entities {
		if a, ok := s.w.Components.Agent.Get(e); ok {
			out = append(out, agentView{w: s.w, e: e, intelligence: a.Intelligence})
			continue
		}
		out = append(out, entityView(e))
	}
	return out
}

// entityView is an occupant with no agent capabilities
type entityView core.Entity

func (v entityView) Entity() core.Entity { return core.Entity(v) }

// agentView exposes an agent entity as fuse.Agent and fuse.Alertable
type agentView struct {
	w            *World
	e            core.Entity
	intelligence fuse.Intelligence
}

func (v agentView) Entity() core.Entity               { return v.e }
func (v agentView) Intelligence() fuse.Intelligence { return v.intelligence }

func (v agentView) NotifyDangerousFuse(source core.Entity) {
	v.w.PushEvent(event.EventFuseAlert, &event.FuseAlertPayload{Agent: v.e, Source: source})
}

// fuseObserver counts fuse transitions into the status registry
type fuseObserver struct {
	armed     *atomic.Int64
	stopped   *atomic.Int64
	detonated *atomic.Int64
}

func newFuseObserver(reg *status.Registry) *fuseObserver {
	return &fuseObserver{
		armed:     reg.Ints.Get("fuse.armed"),
		stopped:   reg.Ints.Get("fuse.stopped"),
		detonated: reg.Ints.Get("fuse.detonated"),
	}
}

func (o *fuseObserver) FuseStarted(e core.Entity, silent bool, ticks int) {
	o.armed.Add(1)
	log.Printf("fuse: entity %d armed (silent=%t, %d ticks)", e, silent, ticks)
}

func (o *fuseObserver) FuseStopped(e core.Entity) {
	o.stopped.Add(1)
	log.Printf("fuse: entity %d stopped", e)
}

func (o *fuseObserver) FuseDetonated(e core.Entity, at core.Point, radius float64) {
	o.detonated.Add(1)
	log.Printf("fuse: entity %d detonated at (%d,%d) radius %.2f", e, at.X, at.Y, radius)
}
