package audio

import (
	"fmt"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
)

// newVolume wraps s in a base-2 gain; a linear volume of 0 is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// createWickStart is a short metallic clank: fundamental plus a detuned overtone
func createWickStart(rate beep.SampleRate) (beep.Streamer, error) {
	fund, err := generators.SineTone(rate, parameter.WickStartFreq)
	if err != nil {
		return nil, fmt.Errorf("audio: wick start tone: %w", err)
	}
	over, err := generators.SineTone(rate, parameter.WickStartFreq*2.76)
	if err != nil {
		return nil, fmt.Errorf("audio: wick start overtone: %w", err)
	}

	mixed := beep.Mix(newVolume(fund, 0.6), newVolume(over, 0.25))
	shaped := NewEnvelope(mixed, parameter.WickStartDuration,
		parameter.WickStartAttack, parameter.WickStartRelease, rate)
	return beep.Take(rate.N(parameter.WickStartDuration), shaped), nil
}

// createWickLoop is the endless hiss of a burning wick
func createWickLoop(seed uint64) beep.Streamer {
	hiss := NewNoise(seed, parameter.WickHissCutoff)
	return &effects.Volume{Streamer: hiss, Base: 2, Volume: parameter.WickLoopVolume}
}

// createDetonation is a noise burst followed by a low rumble
func createDetonation(rate beep.SampleRate, seed uint64) (beep.Streamer, error) {
	rumble, err := generators.SineTone(rate, parameter.DetonationFreq)
	if err != nil {
		return nil, fmt.Errorf("audio: detonation tone: %w", err)
	}
	burstLen := parameter.DetonationAttack * 8
	burst := NewEnvelope(NewNoise(seed, 1), burstLen, parameter.DetonationAttack, burstLen/2, rate)
	tail := NewEnvelope(beep.Mix(newVolume(rumble, 0.7), newVolume(NewNoise(seed^0xA5A5, 0.1), 0.5)),
		parameter.DetonationDuration-burstLen, 0, parameter.DetonationRelease, rate)
	return beep.Seq(burst, tail), nil
}

// oneShot builds the streamer for a non-looping cue
func oneShot(cue fuse.Cue, rate beep.SampleRate, seed uint64) (beep.Streamer, error) {
	switch cue {
	case fuse.CueWickStart:
		return createWickStart(rate)
	case fuse.CueDetonation:
		return createDetonation(rate, seed)
	default:
		return nil, fmt.Errorf("audio: cue %s is not a one-shot", cue)
	}
}
