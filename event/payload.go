package event

import (
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

// AttackRequestPayload carries a single damage application
type AttackRequestPayload struct {
	Target core.Entity
	Source core.Entity
	Damage fuse.Damage
}

// ExplosionRequestPayload describes an area effect to resolve
type ExplosionRequestPayload struct {
	Center core.Point
	Radius float64
	Kind   fuse.DamageKind
	Source core.Entity
}

// DeathRequestPayload removes one entity
type DeathRequestPayload struct {
	Entity core.Entity
	Mode   core.DestroyMode
}

// FuseCommand is an explicit order given to a fuse
type FuseCommand uint8

const (
	FuseArm FuseCommand = iota
	FuseArmSilent
	FuseDisarm
	FuseDetonate
)

func (c FuseCommand) String() string {
	switch c {
	case FuseArm:
		return "arm"
	case FuseArmSilent:
		return "arm-silent"
	case FuseDisarm:
		return "disarm"
	case FuseDetonate:
		return "detonate"
	default:
		return "unknown"
	}
}

// FuseCommandPayload targets one fused entity
type FuseCommandPayload struct {
	Target  core.Entity
	Command FuseCommand
}

// FuseAlertPayload tells an agent which charge to flee
type FuseAlertPayload struct {
	Agent  core.Entity
	Source core.Entity
}

// MetaSystemCommandPayload toggles one system
type MetaSystemCommandPayload struct {
	SystemName string
	Enabled    bool
}
