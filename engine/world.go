package engine

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/status"
	"github.com/lixenwraith/wick/vmath"
)

// System is one stage of the simulation step
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update()
}

// World contains all entities, their components and the static terrain
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	Resource   Resource
	Components ComponentStore
	Positions  *PositionStore
	Terrain    *Terrain

	allStores []AnyStore

	eventQueue *event.EventQueue
	router     *EventRouter
	frame      atomic.Int64

	notifier *fuse.Notifier
	observer *fuseObserver

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world of the given size
func NewWorld(width, height int, seed uint64) *World {
	return NewWorldWithStatus(width, height, seed, nil)
}

// NewWorldWithStatus creates a world publishing metrics into reg, shared with
// collaborators living outside the world such as the audio player
func NewWorldWithStatus(width, height int, seed uint64, reg *status.Registry) *World {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if width <= 0 {
		width = parameter.DefaultGridWidth
	}
	if height <= 0 {
		height = parameter.DefaultGridHeight
	}

	queue := event.NewEventQueue()
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Components:   newComponentStore(),
		Positions:    NewPositionStore(width, height),
		Terrain:      NewTerrain(width, height),
		eventQueue:   queue,
		router:       NewEventRouter(queue),
		Resource: Resource{
			Time:   &TimeResource{},
			Config: &ConfigResource{Width: width, Height: height, Seed: seed},
			Status: reg,
			Rand:   vmath.NewFastRand(seed),
		},
	}
	w.allStores = append(w.Components.all(), w.Positions)
	w.notifier = fuse.NewNotifier(worldSpatial{w: w}, parameter.FuseNotifyRadius)
	w.observer = newFuseObserver(w.Resource.Status)
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// IsAlive reports whether the entity was created and not yet destroyed
func (w *World) IsAlive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// DestroyEntity removes all components associated with an entity
// A fuse still holding a sound loop releases it
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	_, ok := w.alive[e]
	delete(w.alive, e)
	w.mu.Unlock()
	if !ok {
		return
	}

	if fc, ok := w.Components.Fuse.Get(e); ok && fc.Machine != nil {
		fc.Machine.Release()
	}
	for _, store := range w.allStores {
		store.Remove(e)
	}
}

// Clear removes all entities, walls and pending events
func (w *World) Clear() {
	w.mu.Lock()
	w.nextEntityID = 1
	live := make([]core.Entity, 0, len(w.alive))
	for e := range w.alive {
		live = append(live, e)
	}
	w.alive = make(map[core.Entity]struct{})
	w.mu.Unlock()

	for _, e := range live {
		if fc, ok := w.Components.Fuse.Get(e); ok && fc.Machine != nil {
			fc.Machine.Release()
		}
	}
	for _, store := range w.allStores {
		store.Clear()
	}
	w.Terrain.ClearWalls()
	w.eventQueue.Consume()
}

// Reset clears the world and lets systems drop their own state
func (w *World) Reset() {
	w.RunSafe(func() {
		w.Clear()
		w.frame.Store(0)
		w.Resource.Time.FrameNumber = 0
		w.Resource.Status.Reset()
		w.PushEvent(event.EventWorldReset, nil)
		w.router.DispatchAll()
	})
}

// AddSystem adds a system, sorts by priority and routes its events
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}

	if h, ok := system.(EventHandler); ok {
		w.router.Register(h)
	}
}

// Systems returns a copy of all registered systems in run order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs one simulation step
func (w *World) Update() {
	w.RunSafe(w.UpdateLocked)
}

// UpdateLocked runs one step assuming the caller already holds updateMutex
// Order: settle pending events, run systems, settle events they raised
func (w *World) UpdateLocked() {
	w.settleEvents()

	for _, system := range w.Systems() {
		system.Update()
	}

	w.settleEvents()
	w.Resource.Time.FrameNumber = w.frame.Add(1)
}

// settleEvents dispatches until the queue drains, bounded so runaway chains
// spill into the next step instead of stalling it
func (w *World) settleEvents() {
	for i := 0; i < parameter.EventSettleIterations; i++ {
		if w.router.DispatchAll() == 0 {
			return
		}
	}
	log.Printf("engine: events still pending after %d dispatch passes at frame %d",
		parameter.EventSettleIterations, w.frame.Load())
}

// FrameNumber returns the number of completed steps
func (w *World) FrameNumber() int64 {
	return w.frame.Load()
}

// SetFrameNumber restores the step counter from a save
func (w *World) SetFrameNumber(frame int64) {
	w.frame.Store(frame)
	w.Resource.Time.FrameNumber = frame
}

// PushEvent emits a game event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frame.Load(),
	})
}

// Events exposes the queue for the event package's emit helpers
func (w *World) Events() *event.EventQueue {
	return w.eventQueue
}

// DroppedEvents reports queue overflow since creation
func (w *World) DroppedEvents() uint64 {
	return w.eventQueue.Dropped()
}
