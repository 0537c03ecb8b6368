// Package audio synthesizes fuse cues and mixes them through beep
package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/status"
)

// ErrNoAudioDevice is returned by Start when no output device could be
// opened; the player keeps working silently
var ErrNoAudioDevice = errors.New("audio: no output device")

// Options configures a CuePlayer
type Options struct {
	SampleRate int
	// MasterVolume is a base-2 gain, 0 is unity
	MasterVolume float64
	// Width is the grid width used for stereo panning, 0 disables panning
	Width  int
	Muted  bool
	Status *status.Registry
}

// CuePlayer plays fuse cues and keeps wick loops alive only while their
// owners maintain them. It implements fuse.Audio
type CuePlayer struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	width  int
	loops  map[core.Entity]*loopVoice
	seed   uint64

	muted   atomic.Bool
	started bool

	statOneShots *atomic.Int64
	statLoops    *atomic.Int64
	statDropped  *atomic.Int64
	statMuted    *atomic.Bool
}

// NewCuePlayer creates a player; nothing is audible until Start
func NewCuePlayer(opts Options) *CuePlayer {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = parameter.AudioSampleRate
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	mixer := &beep.Mixer{}
	p := &CuePlayer{
		rate:   beep.SampleRate(rate),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: opts.MasterVolume},
		width:  opts.Width,
		loops:  make(map[core.Entity]*loopVoice),
		seed:   1,

		statOneShots: reg.Ints.Get("audio.oneshots"),
		statLoops:    reg.Ints.Get("audio.loops"),
		statDropped:  reg.Ints.Get("audio.dropped"),
		statMuted:    reg.Bools.Get("audio.muted"),
	}
	p.muted.Store(opts.Muted)
	p.statMuted.Store(opts.Muted)
	return p
}

// Start opens the output device and begins playback
func (p *CuePlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
	}
	speaker.Play(p)
	p.started = true
	return nil
}

// Close stops every sound and releases the device
func (p *CuePlayer) Close() {
	p.mu.Lock()
	for owner, l := range p.loops {
		l.ctrl.Streamer = nil
		delete(p.loops, owner)
	}
	p.mixer.Clear()
	p.statLoops.Store(0)
	started := p.started
	p.started = false
	p.mu.Unlock()

	if started {
		speaker.Clear()
		speaker.Close()
	}
}

// Stream renders mixed output; the speaker pulls through it so every mixer
// access happens under the player lock
func (p *CuePlayer) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, _ := p.master.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (p *CuePlayer) Err() error { return nil }

// SetMuted silences new cues and ends running loops
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
	p.statMuted.Store(muted)
	if muted {
		p.mu.Lock()
		for owner, l := range p.loops {
			p.endLocked(owner, l)
		}
		p.mu.Unlock()
	}
}

// ToggleMute flips the mute state, returning true when sound is now on
func (p *CuePlayer) ToggleMute() bool {
	muted := !p.muted.Load()
	p.SetMuted(muted)
	return !muted
}

// Muted reports the mute state
func (p *CuePlayer) Muted() bool { return p.muted.Load() }

// PlayOneShot implements fuse.Audio
func (p *CuePlayer) PlayOneShot(cue fuse.Cue, at core.Point) {
	if p.muted.Load() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mixer.Len() >= parameter.MaxAudioVoices {
		p.statDropped.Add(1)
		return
	}
	s, err := oneShot(cue, p.rate, p.nextSeed())
	if err != nil {
		log.Printf("%v", err)
		return
	}
	p.mixer.Add(p.pan(s, at))
	p.statOneShots.Add(1)
}

// StartLoop implements fuse.Audio; a second loop for the same owner
// replaces the first
func (p *CuePlayer) StartLoop(cue fuse.Cue, owner core.Entity) fuse.Loop {
	if p.muted.Load() || cue != fuse.CueWickLoop {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.loops[owner]; ok {
		p.endLocked(owner, old)
	}
	l := &loopVoice{
		p:          p,
		owner:      owner,
		ctrl:       &beep.Ctrl{Streamer: createWickLoop(p.nextSeed())},
		maintained: true,
	}
	p.loops[owner] = l
	p.mixer.Add(l.ctrl)
	p.statLoops.Store(int64(len(p.loops)))
	return l
}

// EndUnmaintained ends every loop that was not maintained since the previous
// call. Called once per simulation step after all owners had their turn
func (p *CuePlayer) EndUnmaintained() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Registry resets zero it; refreshed every step
	p.statMuted.Store(p.muted.Load())

	ended := 0
	for owner, l := range p.loops {
		if !l.maintained {
			p.endLocked(owner, l)
			ended++
			continue
		}
		l.maintained = false
	}
	return ended
}

// ActiveLoops returns the number of running loops
func (p *CuePlayer) ActiveLoops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.loops)
}

// Voices returns the number of streamers in the mixer, ended loops count
// until the next render
func (p *CuePlayer) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

func (p *CuePlayer) endLocked(owner core.Entity, l *loopVoice) {
	if l.ended {
		return
	}
	l.ended = true
	l.ctrl.Streamer = nil // mixer drops it on the next render
	if p.loops[owner] == l {
		delete(p.loops, owner)
	}
	p.statLoops.Store(int64(len(p.loops)))
}

// pan places a cue in the stereo field by column
func (p *CuePlayer) pan(s beep.Streamer, at core.Point) beep.Streamer {
	if p.width <= 1 {
		return s
	}
	pos := float64(at.X)/float64(p.width-1)*2 - 1
	pos = min(max(pos, -1), 1)
	return &effects.Pan{Streamer: s, Pan: pos * 0.6}
}

func (p *CuePlayer) nextSeed() uint64 {
	p.seed = p.seed*6364136223846793005 + 1442695040888963407
	return p.seed
}

// loopVoice is a running wick hiss
type loopVoice struct {
	p          *CuePlayer
	owner      core.Entity
	ctrl       *beep.Ctrl
	maintained bool
	ended      bool
}

// Maintain keeps the loop alive through the next EndUnmaintained; false
// once the loop was ended by mute, a missed sweep or a replacement
func (l *loopVoice) Maintain() bool {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	if l.ended {
		return false
	}
	l.maintained = true
	return true
}

// End stops the loop
func (l *loopVoice) End() {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	l.p.endLocked(l.owner, l)
}
