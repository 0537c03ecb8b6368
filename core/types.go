package core

// Entity is a world-unique identifier, 0 is reserved for "no entity"
type Entity uint64

// Point represents a 2D grid coordinate
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// DistSq returns squared Euclidean distance between two cells
func (p Point) DistSq(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// DestroyMode tells downstream systems how an entity left the world
type DestroyMode uint8

const (
	// DestroyVanish is ordinary removal (despawn, pickup, reset)
	DestroyVanish DestroyMode = iota
	// DestroyKill is violent end-of-life, leaves debris and counts as a kill
	DestroyKill
)

func (m DestroyMode) String() string {
	switch m {
	case DestroyVanish:
		return "vanish"
	case DestroyKill:
		return "kill"
	default:
		return "unknown"
	}
}
