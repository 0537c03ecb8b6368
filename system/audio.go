package system

import (
	"sync/atomic"

	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/parameter"
)

// LoopSweeper ends sound loops that were not maintained during the step
type LoopSweeper interface {
	EndUnmaintained() int
}

// AudioSystem runs last each tick so every fuse had its chance to maintain
// its wick loop before the sweep
type AudioSystem struct {
	world   *engine.World
	sweeper LoopSweeper

	statEnded *atomic.Int64

	enabled bool
}

// NewAudioSystem creates the sweep stage; a nil sweeper makes it a no-op
func NewAudioSystem(world *engine.World, sweeper LoopSweeper) engine.System {
	s := &AudioSystem{
		world:   world,
		sweeper: sweeper,
	}

	s.statEnded = world.Resource.Status.Ints.Get("audio.loops_ended")

	s.Init()
	return s
}

func (s *AudioSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *AudioSystem) Name() string {
	return "audio"
}

func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
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
	}
}

func (s *AudioSystem) Update() {
	if !s.enabled || s.sweeper == nil {
		return
	}
	if n := s.sweeper.EndUnmaintained(); n > 0 {
		s.statEnded.Add(int64(n))
	}
}
