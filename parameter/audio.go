package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Fuse Cues
const (
	// WickStartDuration is the clank played when an audible wick lights
	WickStartDuration = 120 * time.Millisecond
	WickStartFreq     = 880.0

	// WickLoopVolume is the hiss loudness relative to master (beep Volume base 2)
	WickLoopVolume = -2.5

	// DetonationDuration is the blast rumble
	DetonationDuration = 600 * time.Millisecond
)

// Cue shaping
const (
	WickStartAttack  = 5 * time.Millisecond
	WickStartRelease = 80 * time.Millisecond

	// WickHissCutoff is the one-pole smoothing factor of the hiss noise (0..1, lower is duller)
	WickHissCutoff = 0.35

	DetonationFreq    = 55.0
	DetonationAttack  = 10 * time.Millisecond
	DetonationRelease = 450 * time.Millisecond

	// MaxAudioVoices caps simultaneous one-shots; extra requests are dropped
	MaxAudioVoices = 24
)
