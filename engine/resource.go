package engine

import (
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/status"
	"github.com/lixenwraith/wick/vmath"
)

// Resource holds singleton world resources, accessed via World.Resource
type Resource struct {
	Time   *TimeResource
	Config *ConfigResource

	// Telemetry
	Status *status.Registry

	// Rand is the deterministic simulation random source
	Rand *vmath.FastRand

	// Audio is nil when sound is disabled
	Audio fuse.Audio
}

// TimeResource tracks simulation progress
type TimeResource struct {
	// FrameNumber is the number of completed ticks
	FrameNumber int64
}

// ConfigResource is the world shape fixed at creation
type ConfigResource struct {
	Width  int
	Height int
	Seed   uint64
}
