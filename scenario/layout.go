package scenario

import (
	"github.com/lixenwraith/wick/core"
)

// PopulateDemo walls the grid into two sealed rooms and scatters explosives,
// agents and crates through them; warnings never cross the divider
func (sb *Sandbox) PopulateDemo() {
	w := sb.World
	width, height := w.Terrain.Size()
	mid := width / 2

	for x := 0; x < width; x++ {
		w.Terrain.SetWall(core.Point{X: x, Y: 0}, true)
		w.Terrain.SetWall(core.Point{X: x, Y: height - 1}, true)
	}
	for y := 0; y < height; y++ {
		w.Terrain.SetWall(core.Point{X: 0, Y: y}, true)
		w.Terrain.SetWall(core.Point{X: width - 1, Y: y}, true)
		w.Terrain.SetWall(core.Point{X: mid, Y: y}, true)
	}

	names := sb.Definitions().ExplosiveNames()
	agents := sb.Definitions().AgentNames()
	rng := w.Resource.Rand

	place := func(spawn func(core.Point) error) {
		for range 32 {
			p := core.Point{X: rng.IntRange(1, width-2), Y: rng.IntRange(1, height-2)}
			if spawn(p) == nil {
				return
			}
		}
	}

	for i := range 6 {
		name := names[i%len(names)]
		stack := 1 + i%3
		place(func(p core.Point) error {
			_, err := sb.SpawnExplosive(name, p, stack)
			return err
		})
	}
	for i := range 5 {
		if len(agents) == 0 {
			break
		}
		name := agents[i%len(agents)]
		place(func(p core.Point) error {
			_, err := sb.SpawnAgent(name, p)
			return err
		})
	}
	for range 4 {
		place(func(p core.Point) error {
			_, err := sb.SpawnCrate(p)
			return err
		})
	}
}
