package parameter

import "time"

// Simulation Timing
const (
	// TickInterval is one simulation step; fuse durations are counted in ticks
	TickInterval = 50 * time.Millisecond

	// TicksPerSecond converts tick counts for display
	TicksPerSecond = int(time.Second / TickInterval)

	// FrameUpdateInterval is the sandbox render interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// MaxEntitiesPerCell keeps the Cell struct at 128 bytes (2 cache lines)
// 15 * 8 (Entities) + 1 (Count) + 7 (Padding) = 128 bytes
const MaxEntitiesPerCell = 15

// Spatial Grid Defaults
const (
	DefaultGridWidth  = 80
	DefaultGridHeight = 24
)

// EventSettleIterations bounds how many dispatch passes a tick spends draining
// events raised by handlers (chain reactions resolve within one tick)
const EventSettleIterations = 16

// MaxGridCells caps configured grid sizes
const MaxGridCells = 1 << 20
