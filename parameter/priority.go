package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityCombat    = 10 // Damage lands before fuses tick
	PriorityFuse      = 20
	PriorityExplosion = 30 // After Fuse, same tick blasts resolve immediately
	PriorityAlert     = 40
	PriorityDeath     = 50 // After everything that may request a death
	PriorityAudio     = 60 // Last, sees every Maintain call of the tick
)
