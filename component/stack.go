package component

// StackComponent counts how many units share one entity
type StackComponent struct {
	Count int
}
