package system

import (
	"log"
	"sort"
	"sync/atomic"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/parameter"
)

// fleeSteps are the candidate moves, checked in this order so ties are stable
var fleeSteps = [8]core.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// AlertSystem records fuse warnings on agents and walks alerted agents away
// from the charge until it is gone or the warning is forgotten
type AlertSystem struct {
	world *engine.World

	statAlerts  *atomic.Int64
	statFleeing *atomic.Int64

	enabled bool
}

func NewAlertSystem(world *engine.World) engine.System {
	s := &AlertSystem{
		world: world,
	}

	s.statAlerts = world.Resource.Status.Ints.Get("fuse.alerts")
	s.statFleeing = world.Resource.Status.Ints.Get("alert.fleeing")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *AlertSystem) Init() {
	s.statFleeing.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *AlertSystem) Name() string {
	return "alert"
}

func (s *AlertSystem) Priority() int {
	return parameter.PriorityAlert
}

func (s *AlertSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventFuseAlert,
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *AlertSystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventFuseAlert {
		if p, ok := ev.Payload.(*event.FuseAlertPayload); ok {
			s.alert(p.Agent, p.Source, ev.Frame)
		}
	}
}

func (s *AlertSystem) alert(agent, source core.Entity, frame int64) {
	ok := s.world.Components.Agent.Update(agent, func(a *component.AgentComponent) {
		a.FleeFrom = source
		a.AlertedFrame = frame
		a.Alerts++
	})
	if ok {
		s.statAlerts.Add(1)
	}
}

// Update calms agents whose danger passed and steps the others away
func (s *AlertSystem) Update() {
	if !s.enabled {
		return
	}

	frame := s.world.FrameNumber()
	move := frame%parameter.AgentFleeInterval == 0
	fleeing := int64(0)

	for _, e := range s.world.Components.Agent.All() {
		a, ok := s.world.Components.Agent.Get(e)
		if !ok || !a.Alerted() {
			continue
		}

		sourcePos, sourceOK := s.world.Positions.Get(a.FleeFrom)
		if !sourceOK || !s.world.IsAlive(a.FleeFrom) || frame-a.AlertedFrame > parameter.AlertMemoryTicks {
			s.world.Components.Agent.Update(e, func(a *component.AgentComponent) {
				a.FleeFrom = 0
			})
			continue
		}

		fleeing++
		if move {
			s.stepAway(e, sourcePos)
		}
	}
	s.statFleeing.Store(fleeing)
}

// stepAway moves the agent to the open neighbor farthest from danger, if any
// is farther than where it stands; a full cell falls through to the next best
func (s *AlertSystem) stepAway(e core.Entity, danger core.Point) {
	pos, ok := s.world.Positions.Get(e)
	if !ok {
		return
	}

	here := pos.DistSq(danger)
	candidates := make([]core.Point, 0, len(fleeSteps))
	for _, step := range fleeSteps {
		next := pos.Add(step)
		if s.world.Terrain.IsWall(next) || s.blocked(next) || next.DistSq(danger) <= here {
			continue
		}
		candidates = append(candidates, next)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistSq(danger) > candidates[j].DistSq(danger)
	})

	for _, next := range candidates {
		err := s.world.Positions.Set(e, next)
		if err == nil {
			return
		}
		log.Printf("alert: entity %d flee: %v", e, err)
	}
}

// blocked reports a cell holding another solid entity (anything with hit points)
func (s *AlertSystem) blocked(p core.Point) bool {
	for _, other := range s.world.Positions.EntitiesAt(p) {
		if s.world.Components.Combat.Has(other) {
			return true
		}
	}
	return false
}
