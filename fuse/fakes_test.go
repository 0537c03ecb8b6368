package fuse

import "github.com/lixenwraith/wick/core"

type fakeHost struct {
	id        core.Entity
	pos       core.Point
	onGrid    bool
	maxHP     int
	stack     int
	destroyed bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{id: 7, pos: core.Point{X: 5, Y: 5}, onGrid: true, maxHP: 100, stack: 1}
}

func (h *fakeHost) Entity() core.Entity          { return h.id }
func (h *fakeHost) Position() (core.Point, bool) { return h.pos, h.onGrid }
func (h *fakeHost) MaxHitPoints() int            { return h.maxHP }
func (h *fakeHost) StackCount() int              { return h.stack }
func (h *fakeHost) Destroyed() bool              { return h.destroyed }

type explosion struct {
	at     core.Point
	radius float64
	kind   DamageKind
	source core.Entity
}

type fakeEffects struct {
	host       *fakeHost
	destroyed  []core.DestroyMode
	explosions []explosion
}

func (f *fakeEffects) Destroy(e core.Entity, mode core.DestroyMode) {
	f.destroyed = append(f.destroyed, mode)
	if f.host != nil && f.host.id == e {
		f.host.destroyed = true
		f.host.onGrid = false
	}
}

func (f *fakeEffects) Explode(at core.Point, radius float64, kind DamageKind, source core.Entity) {
	f.explosions = append(f.explosions, explosion{at: at, radius: radius, kind: kind, source: source})
}

type fakeLoop struct {
	maintained int
	ended      bool
}

func (l *fakeLoop) Maintain() bool {
	if l.ended {
		return false
	}
	l.maintained++
	return true
}

func (l *fakeLoop) End() { l.ended = true }

// fakeAudio hands out loops unless muted, like a real player
type fakeAudio struct {
	oneShots     []Cue
	loops        []*fakeLoop
	loopRequests int
	muted        bool
}

func (a *fakeAudio) PlayOneShot(cue Cue, _ core.Point) {
	if a.muted {
		return
	}
	a.oneShots = append(a.oneShots, cue)
}

func (a *fakeAudio) StartLoop(_ Cue, _ core.Entity) Loop {
	a.loopRequests++
	if a.muted {
		return nil
	}
	l := &fakeLoop{}
	a.loops = append(a.loops, l)
	return l
}

// mute ends every running loop the way a player does on mute
func (a *fakeAudio) mute() {
	a.muted = true
	for _, l := range a.loops {
		l.ended = true
	}
}

// fixedRand always returns the same roll clamped into range
type fixedRand int

func (r fixedRand) IntRange(min, max int) int {
	v := int(r)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

type fakeAgent struct {
	id      core.Entity
	intel   Intelligence
	alerted []core.Entity
}

func (a *fakeAgent) Entity() core.Entity                 { return a.id }
func (a *fakeAgent) Intelligence() Intelligence          { return a.intel }
func (a *fakeAgent) NotifyDangerousFuse(src core.Entity) { a.alerted = append(a.alerted, src) }

type fakeRock struct{ id core.Entity }

func (r fakeRock) Entity() core.Entity { return r.id }

// fakeSpatial is a small bounded grid with walls and explicit room ids
type fakeSpatial struct {
	w, h      int
	occupants map[core.Point][]Occupant
	walls     map[core.Point]bool
	rooms     map[core.Point]RoomID
}

func newFakeSpatial(w, h int) *fakeSpatial {
	return &fakeSpatial{
		w: w, h: h,
		occupants: make(map[core.Point][]Occupant),
		walls:     make(map[core.Point]bool),
		rooms:     make(map[core.Point]RoomID),
	}
}

func (s *fakeSpatial) put(p core.Point, o Occupant) {
	s.occupants[p] = append(s.occupants[p], o)
}

func (s *fakeSpatial) InBounds(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.w && p.Y < s.h
}

func (s *fakeSpatial) OccupantsAt(p core.Point) []Occupant { return s.occupants[p] }

func (s *fakeSpatial) RoomAt(p core.Point) RoomID {
	if s.walls[p] {
		return NoRoom
	}
	return s.rooms[p]
}

func (s *fakeSpatial) LineOfSight(from, to core.Point) bool {
	// Straight rows and columns are enough for these tests
	switch {
	case from.Y == to.Y:
		lo, hi := min(from.X, to.X), max(from.X, to.X)
		for x := lo + 1; x < hi; x++ {
			if s.walls[core.Point{X: x, Y: from.Y}] {
				return false
			}
		}
		return true
	case from.X == to.X:
		lo, hi := min(from.Y, to.Y), max(from.Y, to.Y)
		for y := lo + 1; y < hi; y++ {
			if s.walls[core.Point{X: from.X, Y: y}] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

type recordingObserver struct {
	started, stopped, detonated int
}

func (o *recordingObserver) FuseStarted(core.Entity, bool, int)             { o.started++ }
func (o *recordingObserver) FuseStopped(core.Entity)                        { o.stopped++ }
func (o *recordingObserver) FuseDetonated(core.Entity, core.Point, float64) { o.detonated++ }
