package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/wick/component"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
)

// FuseSystem advances every fuse once per tick and executes fuse orders
type FuseSystem struct {
	world *engine.World

	statBurning  *atomic.Int64
	statCommands *atomic.Int64

	enabled bool
}

func NewFuseSystem(world *engine.World) *FuseSystem {
	s := &FuseSystem{
		world: world,
	}

	s.statBurning = world.Resource.Status.Ints.Get("fuse.burning")
	s.statCommands = world.Resource.Status.Ints.Get("fuse.commands")

	s.Init()
	return s
}

func (s *FuseSystem) Init() {
	s.statBurning.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *FuseSystem) Name() string {
	return "fuse"
}

func (s *FuseSystem) Priority() int {
	return parameter.PriorityFuse
}

func (s *FuseSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventFuseCommand,
		event.EventMetaSystemCommandRequest,
		event.EventWorldReset,
	}
}

func (s *FuseSystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventFuseCommand {
		if p, ok := ev.Payload.(*event.FuseCommandPayload); ok {
			s.execute(p)
		}
	}
}

func (s *FuseSystem) execute(p *event.FuseCommandPayload) {
	if !s.world.IsAlive(p.Target) {
		return
	}
	fc, ok := s.world.Components.Fuse.Get(p.Target)
	if !ok || fc.Machine == nil {
		log.Printf("fuse: %s order for entity %d without a fuse", p.Command, p.Target)
		return
	}
	s.statCommands.Add(1)

	switch p.Command {
	case event.FuseArm:
		fc.Machine.StartFuse(false)
	case event.FuseArmSilent:
		fc.Machine.StartFuse(true)
	case event.FuseDisarm:
		fc.Machine.StopFuse()
	case event.FuseDetonate:
		fc.Machine.Detonate()
	}
}

// Update advances each burning fuse one step and refreshes explosive glyphs
func (s *FuseSystem) Update() {
	if !s.enabled {
		return
	}

	burning := int64(0)
	for _, e := range s.world.Components.Fuse.All() {
		fc, ok := s.world.Components.Fuse.Get(e)
		if !ok || fc.Machine == nil {
			continue
		}
		fc.Machine.Advance()
		if fc.Machine.Started() && !fc.Machine.Detonated() {
			burning++
		}
		s.world.Components.Glyph.Update(e, func(g *component.GlyphComponent) {
			g.Variant = fc.GraphicVariant()
		})
	}
	s.statBurning.Store(burning)
}

// ApplyProps swaps the props of every fuse built from a definition the
// lookup knows; running timers are kept. Returns the number of fuses updated
func (s *FuseSystem) ApplyProps(lookup func(definition string) (*fuse.Props, bool)) int {
	updated := 0
	for _, e := range s.world.Components.Fuse.All() {
		fc, ok := s.world.Components.Fuse.Get(e)
		if !ok || fc.Machine == nil {
			continue
		}
		if props, ok := lookup(fc.Definition); ok {
			fc.Machine.SetProps(props)
			updated++
		}
	}
	return updated
}
