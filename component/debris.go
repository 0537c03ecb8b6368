package component

// DebrisComponent is the short-lived wreck left by a killed entity
type DebrisComponent struct {
	Remaining int // ticks until removal
}
