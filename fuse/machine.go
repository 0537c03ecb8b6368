package fuse

import "github.com/lixenwraith/wick/core"

// Machine is the per-entity fuse state machine
type Machine struct {
	props *Props
	host  Host
	deps  Deps

	started        bool
	silent         bool
	detonated      bool
	ticksRemaining int
	ticksTotal     int

	// Audio state is transient and never persisted
	cueStarted bool
	loop       Loop

	// Last known cell, the blast origin if the host is gone by detonation
	lastPos core.Point
}

// NewMachine attaches an idle fuse to host
func NewMachine(props *Props, host Host, deps Deps) *Machine {
	m := &Machine{
		props: props,
		host:  host,
		deps:  deps,
	}
	m.trackPosition()
	return m
}

// Props returns the shared explosive definition
func (m *Machine) Props() *Props { return m.props }

// SetProps swaps the definition, used on definition hot reload
// Running fuses keep their rolled duration
func (m *Machine) SetProps(p *Props) {
	if p != nil {
		m.props = p
	}
}

func (m *Machine) Started() bool       { return m.started }
func (m *Machine) Silent() bool        { return m.silent }
func (m *Machine) Detonated() bool     { return m.detonated }
func (m *Machine) TicksRemaining() int { return m.ticksRemaining }
func (m *Machine) TicksTotal() int     { return m.ticksTotal }

// State derives the public state from the flags
func (m *Machine) State() State {
	switch {
	case m.detonated:
		return StateDetonated
	case !m.started:
		return StateIdle
	case m.silent:
		return StateArmedSilent
	default:
		return StateArmedAudible
	}
}

// ShowsWickOverlay reports whether renderers should draw a burning wick
func (m *Machine) ShowsWickOverlay() bool {
	return m.started && !m.silent && !m.detonated
}

// Progress returns elapsed fraction of the running fuse in [0, 1]
func (m *Machine) Progress() float64 {
	if !m.started || m.ticksTotal <= 0 {
		return 0
	}
	return 1 - float64(m.ticksRemaining)/float64(m.ticksTotal)
}

// StartThreshold is the damage-arming hit point level for the host
func (m *Machine) StartThreshold() int {
	return StartThreshold(m.props.StartWickHitPointsPercent, m.host.MaxHitPoints())
}

// StartFuse arms the fuse. A non-silent request on a running silent fuse
// exposes it without resetting the timer; any other request on a running
// fuse is ignored
func (m *Machine) StartFuse(silent bool) {
	if m.detonated {
		return
	}
	if m.started {
		if !silent {
			m.silent = false
		}
		return
	}

	m.silent = silent
	m.started = true
	m.ticksTotal = m.rollDuration()
	m.ticksRemaining = m.ticksTotal
	m.cueStarted = false

	if m.deps.Observer != nil {
		m.deps.Observer.FuseStarted(m.host.Entity(), silent, m.ticksTotal)
	}
	m.notifyNearby()
}

// StopFuse disarms; the next start rolls a fresh duration
func (m *Machine) StopFuse() {
	if m.detonated || !m.started {
		return
	}
	m.started = false
	m.endLoop()
	if m.deps.Observer != nil {
		m.deps.Observer.FuseStopped(m.host.Entity())
	}
}

// Release drops the sound loop when the host leaves the world without
// detonating; the machine state is left as is
func (m *Machine) Release() {
	m.endLoop()
}

// Advance runs one simulation step
func (m *Machine) Advance() {
	if !m.started || m.detonated {
		return
	}
	m.trackPosition()

	if !m.cueStarted {
		if !m.silent {
			m.startCue()
		}
	} else if m.loop == nil || !m.loop.Maintain() {
		m.resumeLoop()
	}

	if m.ticksRemaining > 0 {
		m.ticksRemaining--
	}
	if m.ticksRemaining <= 0 {
		m.Detonate()
	}
}

// OnDamage applies the damage response policy; hitPoints is the host's
// value after the damage was applied. Precedence is fixed: lethal violence
// first, then interruption, then damage arming
func (m *Machine) OnDamage(d Damage, hitPoints int) {
	if m.detonated {
		return
	}
	switch {
	case hitPoints <= 0:
		if d.ExternalViolence {
			m.Detonate()
		}
	case m.started && (d.Kind == DamageStun || (m.silent && d.Kind == DamageEMP)):
		m.StopFuse()
	case !m.started && d.ExternalViolence:
		threshold := m.StartThreshold()
		if threshold != 0 && hitPoints <= threshold {
			m.StartFuse(false)
		}
	}
}

// Detonate destroys the host and triggers the area effect, at most once
func (m *Machine) Detonate() {
	if m.detonated {
		return
	}
	m.detonated = true
	m.trackPosition()
	m.endLoop()

	e := m.host.Entity()
	if !m.host.Destroyed() {
		m.deps.Effects.Destroy(e, core.DestroyKill)
	}

	radius := EffectiveRadius(m.props.ExplosiveRadius, m.host.StackCount(), m.props.ExpandPerStackCount)
	m.deps.Effects.Explode(m.lastPos, radius, m.props.DamageKind, e)

	if m.deps.Observer != nil {
		m.deps.Observer.FuseDetonated(e, m.lastPos, radius)
	}
}

func (m *Machine) rollDuration() int {
	r := m.props.WickTicks
	if m.deps.Rand == nil || r.Max <= r.Min {
		return max(r.Min, 0)
	}
	return max(m.deps.Rand.IntRange(r.Min, r.Max), 0)
}

func (m *Machine) notifyNearby() {
	if m.deps.Notifier == nil {
		return
	}
	if pos, ok := m.host.Position(); ok {
		m.deps.Notifier.NotifyFrom(pos, m.host.Entity())
	}
}

func (m *Machine) startCue() {
	m.cueStarted = true
	if m.deps.Audio == nil {
		return
	}
	m.deps.Audio.PlayOneShot(CueWickStart, m.lastPos)
	m.loop = m.deps.Audio.StartLoop(CueWickLoop, m.host.Entity())
}

// resumeLoop replaces a loop ended elsewhere (mute, missed sweep) without
// replaying the start cue
func (m *Machine) resumeLoop() {
	m.loop = nil
	if m.deps.Audio == nil {
		return
	}
	m.loop = m.deps.Audio.StartLoop(CueWickLoop, m.host.Entity())
}

func (m *Machine) endLoop() {
	if m.loop != nil {
		m.loop.End()
		m.loop = nil
	}
	m.cueStarted = false
}

func (m *Machine) trackPosition() {
	if m.host == nil {
		return
	}
	if pos, ok := m.host.Position(); ok {
		m.lastPos = pos
	}
}
