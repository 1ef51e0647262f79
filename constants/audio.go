package constants

import "time"

// Audio engine
const (
	// DefaultSampleRate is the speaker sample rate when no file dictates one
	DefaultSampleRate = 44100

	// SpeakerBufferDuration is the speaker buffer length (latency vs. underrun)
	SpeakerBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume is the music volume in [0,1]
	DefaultMasterVolume = 0.6
)

// Lullaby synthesis
const (
	// LullabyBeat is the duration of one melody beat; the sequencer steps in eighths
	LullabyBeat = 400 * time.Millisecond

	// LullabyAttack and LullabyRelease shape each melody note
	LullabyAttack  = 20 * time.Millisecond
	LullabyRelease = 250 * time.Millisecond
)

// Chime timing (gift open)
const (
	ChimeDuration           = 900 * time.Millisecond
	ChimeAttack             = 5 * time.Millisecond
	ChimeFundamentalRelease = 850 * time.Millisecond
	ChimeOvertoneRelease    = 300 * time.Millisecond
)

// Sparkle timing (layer transition)
const (
	SparkleNoteDuration = 90 * time.Millisecond
	SparkleAttack       = 3 * time.Millisecond
	SparkleRelease      = 70 * time.Millisecond
)
