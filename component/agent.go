package component

import (
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

// AgentComponent is a creature that can perceive and flee danger
type AgentComponent struct {
	Name         string
	Intelligence fuse.Intelligence

	// FleeFrom is the fused entity the agent is avoiding, 0 when calm
	FleeFrom core.Entity

	// AlertedFrame is the frame of the last warning received
	AlertedFrame int64

	// Alerts counts warnings received over the agent's lifetime
	Alerts int
}

// Alerted reports whether the agent is currently avoiding a charge
func (a AgentComponent) Alerted() bool {
	return a.FleeFrom != 0
}
