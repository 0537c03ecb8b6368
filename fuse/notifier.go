package fuse

import (
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/vmath"
)

// Notifier broadcasts "dangerous fuse started" to capable agents nearby
// The radial pattern is computed once at construction and reused per call
type Notifier struct {
	spatial         Spatial
	pattern         []core.Point
	minIntelligence Intelligence
}

// NewNotifier builds a notifier scanning every cell within radius
func NewNotifier(spatial Spatial, radius float64) *Notifier {
	return &Notifier{
		spatial:         spatial,
		pattern:         vmath.RadialPattern(radius),
		minIntelligence: IntelligenceHumanlike,
	}
}

// CellCount is the number of offsets scanned per notification
func (n *Notifier) CellCount() int {
	return len(n.pattern)
}

// NotifyFrom resolves the origin's room and notifies
func (n *Notifier) NotifyFrom(origin core.Point, source core.Entity) int {
	return n.Notify(origin, n.spatial.RoomAt(origin), source)
}

// Notify alerts every eligible agent and returns how many were reached
// Order follows the radial pattern, then occupant order within a cell
func (n *Notifier) Notify(origin core.Point, room RoomID, source core.Entity) int {
	notified := 0
	for _, off := range n.pattern {
		c := origin.Add(off)
		if !n.spatial.InBounds(c) {
			continue
		}
		for _, occ := range n.spatial.OccupantsAt(c) {
			if occ == nil || occ.Entity() == source {
				continue
			}
			agent, ok := occ.(Agent)
			if !ok || agent.Intelligence() < n.minIntelligence {
				continue
			}
			if n.spatial.RoomAt(c) != room {
				continue
			}
			if !n.spatial.LineOfSight(origin, c) {
				continue
			}
			target, ok := occ.(Alertable)
			if !ok {
				continue
			}
			target.NotifyDangerousFuse(source)
			notified++
		}
	}
	return notified
}
