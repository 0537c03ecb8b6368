package parameter

// Blast Damage
const (
	// ExplosionCenterDamage is applied at distance 0 from the blast center
	ExplosionCenterDamage = 60

	// ExplosionEdgeDamageFraction is the share of center damage left at the rim
	ExplosionEdgeDamageFraction = 0.3

	// ExplosionLingerTicks keeps a blast visible for the renderer
	ExplosionLingerTicks = 6

	// ExplosionCap bounds concurrently tracked blasts
	ExplosionCap = 64
)

// Hit Points
const (
	// AgentHitPoints is the starting hit points of a sandbox agent
	AgentHitPoints = 100

	// CrateHitPoints is the starting hit points of an inert crate
	CrateHitPoints = 30
)

// Alerts
const (
	// AlertMemoryTicks is how long an agent keeps fleeing a lit fuse
	AlertMemoryTicks = 100
)

// Aftermath
const (
	// DebrisTicks is how long a killed entity's wreck stays on the grid
	DebrisTicks = 20

	// AgentFleeInterval is the number of ticks between flee steps
	AgentFleeInterval = 3
)
