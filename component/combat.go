package component

// CombatComponent marks an entity that can take damage
type CombatComponent struct {
	// HitPoints is the remaining hit points, the entity dies at 0
	HitPoints int

	// MaxHitPoints is the full health used for threshold arming
	MaxHitPoints int

	// LastHitFrame is the frame of the most recent damage, -1 if never hit
	LastHitFrame int64
}

// NewCombat returns a combat component at full health
func NewCombat(maxHitPoints int) CombatComponent {
	return CombatComponent{HitPoints: maxHitPoints, MaxHitPoints: maxHitPoints, LastHitFrame: -1}
}
