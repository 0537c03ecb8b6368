package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// noise generates filtered white noise from a deterministic xorshift source
// cutoff is a one-pole low-pass factor in (0, 1]; 1 is unfiltered
type noise struct {
	state  uint64
	cutoff float64
	last   float64
}

// NewNoise creates an endless noise streamer
func NewNoise(seed uint64, cutoff float64) beep.Streamer {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	if cutoff <= 0 || cutoff > 1 {
		cutoff = 1
	}
	return &noise{state: seed, cutoff: cutoff}
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		x := g.state
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		g.state = x

		white := float64(x>>11)/(1<<53)*2 - 1
		g.last += g.cutoff * (white - g.last)

		samples[i][0] = g.last
		samples[i][1] = g.last
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

// envelope applies attack/release shaping to a stream and ends it after duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.attackSamples + e.sustainSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok || n > 0
}

func (e *envelope) Err() error { return e.streamer.Err() }
