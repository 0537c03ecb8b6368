package fuse

import "github.com/lixenwraith/wick/core"

// Host is the entity a machine is attached to
type Host interface {
	Entity() core.Entity
	// Position returns the current cell, false once the entity left the grid
	Position() (core.Point, bool)
	MaxHitPoints() int
	StackCount() int
	Destroyed() bool
}

// Effects are the host world's destruction and area effect primitives
type Effects interface {
	Destroy(e core.Entity, mode core.DestroyMode)
	Explode(at core.Point, radius float64, kind DamageKind, source core.Entity)
}

// Audio plays fuse feedback; implementations may drop requests freely
type Audio interface {
	PlayOneShot(cue Cue, at core.Point)
	// StartLoop returns nil when the loop could not be started
	StartLoop(cue Cue, owner core.Entity) Loop
}

// Loop is a sustained sound that stops unless maintained every step
type Loop interface {
	// Maintain keeps the loop alive, false once it was ended by anyone
	Maintain() bool
	End()
}

// Spatial exposes the host's grid queries used by the alert broadcast
type Spatial interface {
	InBounds(p core.Point) bool
	OccupantsAt(p core.Point) []Occupant
	RoomAt(p core.Point) RoomID
	LineOfSight(from, to core.Point) bool
}

// Occupant is anything standing in a cell
type Occupant interface {
	Entity() core.Entity
}

// Agent is the capability of an occupant that reasons about danger
type Agent interface {
	Occupant
	Intelligence() Intelligence
}

// Alertable is the capability to receive a dangerous fuse warning
type Alertable interface {
	NotifyDangerousFuse(source core.Entity)
}

// Rand supplies fuse durations
type Rand interface {
	IntRange(min, max int) int
}

// Observer receives transition notifications, used for metrics and logs
type Observer interface {
	FuseStarted(e core.Entity, silent bool, ticks int)
	FuseStopped(e core.Entity)
	FuseDetonated(e core.Entity, at core.Point, radius float64)
}

// Deps bundles the collaborators a machine needs; Audio, Notifier and
// Observer are optional
type Deps struct {
	Effects  Effects
	Audio    Audio
	Notifier *Notifier
	Rand     Rand
	Observer Observer
}
