package vmath

import (
	"math"
	"sort"

	"github.com/lixenwraith/wick/core"
)

// RadiusSqLimit converts a cell radius to the inclusive squared-distance bound
func RadiusSqLimit(radius float64) int {
	if radius < 0 {
		return -1
	}
	return int(math.Floor(radius * radius))
}

// NumCellsInRadius counts integer offsets with dx²+dy² <= radius²
func NumCellsInRadius(radius float64) int {
	limit := RadiusSqLimit(radius)
	if limit < 0 {
		return 0
	}
	r := int(math.Ceil(radius))
	count := 0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= limit {
				count++
			}
		}
	}
	return count
}

// RadialPattern returns every offset within radius ordered nearest first
// Ties break on Y then X so scans are deterministic; the origin is index 0
func RadialPattern(radius float64) []core.Point {
	limit := RadiusSqLimit(radius)
	if limit < 0 {
		return nil
	}
	r := int(math.Ceil(radius))
	pattern := make([]core.Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= limit {
				pattern = append(pattern, core.Point{X: dx, Y: dy})
			}
		}
	}

	sort.Slice(pattern, func(i, j int) bool {
		di := pattern[i].X*pattern[i].X + pattern[i].Y*pattern[i].Y
		dj := pattern[j].X*pattern[j].X + pattern[j].Y*pattern[j].Y
		if di != dj {
			return di < dj
		}
		if pattern[i].Y != pattern[j].Y {
			return pattern[i].Y < pattern[j].Y
		}
		return pattern[i].X < pattern[j].X
	})
	return pattern
}
