package system

import (
	"testing"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/parameter"
)

func TestBlastDamage_Falloff(t *testing.T) {
	tests := []struct {
		name   string
		distSq int
		radius float64
		want   int
	}{
		{"center", 0, 4, parameter.ExplosionCenterDamage},
		{"adjacent", 1, 3.9, 49},
		{"rim", 16, 4, 18},
		{"past rim clamps", 100, 4, 18},
		{"zero radius", 9, 0, parameter.ExplosionCenterDamage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlastDamage(tt.distSq, tt.radius); got != tt.want {
				t.Errorf("BlastDamage(%d, %v) = %d, want %d", tt.distSq, tt.radius, got, tt.want)
			}
		})
	}
}

func newCombatWorld(t *testing.T) *engine.World {
	t.Helper()
	w := engine.NewWorld(16, 10, 1)
	w.AddSystem(NewCombatSystem(w))
	w.AddSystem(NewExplosionSystem(w))
	w.AddSystem(NewDeathSystem(w))
	return w
}

func spawnTarget(t *testing.T, w *engine.World, at core.Point, hp int) core.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := w.Positions.Set(e, at); err != nil {
		t.Fatalf("place: %v", err)
	}
	w.Components.Combat.Set(e, component.NewCombat(hp))
	return e
}

func TestDeath_DebrisExpires(t *testing.T) {
	w := newCombatWorld(t)
	e := spawnTarget(t, w, core.Point{X: 4, Y: 4}, 10)

	w.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{Entity: e, Mode: core.DestroyKill})
	w.Update()

	if w.IsAlive(e) {
		t.Fatal("entity survived kill request")
	}
	debris := w.Components.Debris.All()
	if len(debris) != 1 {
		t.Fatalf("debris count = %d, want 1", len(debris))
	}
	if pos, _ := w.Positions.Get(debris[0]); pos != (core.Point{X: 4, Y: 4}) {
		t.Errorf("debris at %v", pos)
	}

	for range parameter.DebrisTicks {
		w.Update()
	}
	if w.Components.Debris.Count() != 0 {
		t.Error("debris did not expire")
	}
}

func TestDeath_VanishLeavesNothing(t *testing.T) {
	w := newCombatWorld(t)
	e := spawnTarget(t, w, core.Point{X: 4, Y: 4}, 10)

	w.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{Entity: e, Mode: core.DestroyVanish})
	w.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{Entity: e, Mode: core.DestroyKill})
	w.Update()

	if w.Components.Debris.Count() != 0 {
		t.Error("vanish spawned debris")
	}
	if got := w.Resource.Status.Ints.Get("death.vanish").Load(); got != 1 {
		t.Errorf("death.vanish = %d, want 1", got)
	}
	if got := w.Resource.Status.Ints.Get("death.kill").Load(); got != 0 {
		t.Errorf("repeated request counted: death.kill = %d", got)
	}
}

func TestExplosion_SkipsSourceAndRespectsRadius(t *testing.T) {
	w := newCombatWorld(t)
	source := spawnTarget(t, w, core.Point{X: 5, Y: 5}, 10)
	near := spawnTarget(t, w, core.Point{X: 7, Y: 5}, 100)
	far := spawnTarget(t, w, core.Point{X: 12, Y: 5}, 100)

	w.PushEvent(event.EventExplosionRequest, &event.ExplosionRequestPayload{
		Center: core.Point{X: 5, Y: 5},
		Radius: 3,
		Source: source,
	})
	w.Update()

	if c, _ := w.Components.Combat.Get(source); c.HitPoints != 10 {
		t.Errorf("source took damage: %d", c.HitPoints)
	}
	if c, _ := w.Components.Combat.Get(near); c.HitPoints != 100-BlastDamage(4, 3) {
		t.Errorf("near hp = %d", c.HitPoints)
	}
	if c, _ := w.Components.Combat.Get(far); c.HitPoints != 100 {
		t.Errorf("far target hit: %d", c.HitPoints)
	}
}

func TestExplosion_PatternCacheAndMaxRadius(t *testing.T) {
	w := engine.NewWorld(16, 10, 1)
	ex := NewExplosionSystem(w)
	w.AddSystem(ex)

	for _, r := range []float64{3.9, 3.95, 2} {
		w.PushEvent(event.EventExplosionRequest, &event.ExplosionRequestPayload{Center: core.Point{X: 8, Y: 5}, Radius: r})
	}
	w.Update()

	if got := ex.CachedPatterns(); got != 2 {
		t.Errorf("CachedPatterns = %d, want 2 (3.9 and 3.95 share a shape)", got)
	}
	if got := w.Resource.Status.Floats.Get("explosion.max_radius").Get(); got != 3.95 {
		t.Errorf("explosion.max_radius = %v, want 3.95", got)
	}

	w.Reset()
	if got := ex.CachedPatterns(); got != 0 {
		t.Errorf("CachedPatterns after reset = %d", got)
	}
}

func TestAlert_FleeSkipsFullCell(t *testing.T) {
	w := engine.NewWorld(16, 10, 1)
	w.AddSystem(NewAlertSystem(w))

	source := spawnTarget(t, w, core.Point{X: 5, Y: 5}, 10)
	agent := spawnTarget(t, w, core.Point{X: 7, Y: 5}, 10)
	w.Components.Agent.Set(agent, component.AgentComponent{Name: "colonist", FleeFrom: source})

	// Best cell (8,4) is packed with entities that do not block movement
	full := core.Point{X: 8, Y: 4}
	for range parameter.MaxEntitiesPerCell {
		if err := w.Positions.Set(w.CreateEntity(), full); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}

	w.Update()

	if pos, _ := w.Positions.Get(agent); pos != (core.Point{X: 8, Y: 6}) {
		t.Errorf("agent at %v, want next best (8,6)", pos)
	}
}
