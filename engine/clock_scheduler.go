package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wick/core"
)

// ClockScheduler steps the world on a fixed tick
// Handles pause and single-step without busy-wait
type ClockScheduler struct {
	world        *World
	tickInterval time.Duration

	paused   atomic.Bool
	stepChan chan struct{}

	nextTickDeadline time.Time

	tickCount atomic.Uint64

	// Control channels
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	running    atomic.Bool
	updateDone chan struct{}

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler; the returned channel receives a
// signal after every completed tick (dropped when the reader lags)
func NewClockScheduler(world *World, tickInterval time.Duration) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		world:        world,
		tickInterval: tickInterval,
		stepChan:     make(chan struct{}, 1),
		stopChan:     make(chan struct{}),
		updateDone:   updateDone,
		statTicks:    world.Resource.Status.Ints.Get("engine.ticks"),
	}
	return cs, updateDone
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// SetPaused freezes or resumes ticking
func (cs *ClockScheduler) SetPaused(paused bool) { cs.paused.Store(paused) }

// TogglePause flips the pause state, returning the new state
func (cs *ClockScheduler) TogglePause() bool {
	for {
		old := cs.paused.Load()
		if cs.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsPaused reports the pause state
func (cs *ClockScheduler) IsPaused() bool { return cs.paused.Load() }

// Step requests a single tick while paused
func (cs *ClockScheduler) Step() {
	select {
	case cs.stepChan <- struct{}{}:
	default:
	}
}

// TickCount returns completed ticks since start
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return

		case <-cs.stepChan:
			if cs.paused.Load() {
				cs.processTick()
			}

		case <-timer.C:
			now := time.Now()
			if !cs.paused.Load() {
				cs.processTick()
			}

			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
			// Drop missed ticks instead of bursting to catch up
			if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
			}
			timer.Reset(max(time.Until(cs.nextTickDeadline), 0))
		}
	}
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	cs.world.Update()
	cs.tickCount.Add(1)
	cs.statTicks.Add(1)

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
}
