package parameter

// Fuse Alert Broadcast
const (
	// FuseNotifyRadius is the radius in cells scanned for agents when a wick lights
	FuseNotifyRadius = 4.5
)

// Default explosive definition, used when a definition omits a field
const (
	DefaultExplosiveRadius      = 3.9
	DefaultExpandPerStack       = 0.0
	DefaultWickTicksMin         = 70
	DefaultWickTicksMax         = 150
	DefaultStartWickHPPercent   = 0.2
	DefaultExplosiveMaxHitPoint = 50
)
