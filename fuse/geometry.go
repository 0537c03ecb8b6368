package fuse

import "math"

// EffectiveRadius grows the base radius with the square root of extra stacked
// units so large stacks do not scale linearly
func EffectiveRadius(baseRadius float64, stackCount int, growth float64) float64 {
	if stackCount <= 1 || growth <= 0 {
		return baseRadius
	}
	return baseRadius + math.Sqrt(float64(stackCount-1)*growth)
}

// StartThreshold is the hit point level at or below which external violence
// arms the fuse; zero means damage never arms it
func StartThreshold(percent float64, maxHitPoints int) int {
	return int(math.RoundToEven(percent * float64(maxHitPoints)))
}
