package constants

import "time"

// Frame & Loop Timing
const (
	// FrameUpdateInterval is the rendering frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffer between the terminal poller and the main loop
	EventChannelSize = 256
)

// Typewriter cadence per variant
const (
	// TypewriterInterval is the per-rune reveal interval of the enhanced card
	TypewriterInterval = 30 * time.Millisecond

	// BaselineTypewriterInterval is the per-rune reveal interval of the plain card
	BaselineTypewriterInterval = 50 * time.Millisecond
)

// Transition choreography
const (
	// TransitionWindow is the sparkle window between an advance request and its commit
	TransitionWindow = 1000 * time.Millisecond

	// OpeningDuration is the gift-box opening animation played before the first advance
	OpeningDuration = 1500 * time.Millisecond

	// FadeInDuration is how long a freshly mounted view takes to reach full colour
	FadeInDuration = 1000 * time.Millisecond
)

// Blessing particles
const (
	// ParticleCount is the number of particles floating over the blessing
	ParticleCount = 20

	// ParticleStagger is the start delay between consecutive particles
	ParticleStagger = 200 * time.Millisecond

	// ParticleBaseDuration is the minimum bounce period of a particle
	ParticleBaseDuration = 3000 * time.Millisecond

	// ParticleDurationJitter is the random extra added to each bounce period
	ParticleDurationJitter = 2000 * time.Millisecond
)

// Sparkles & confetti
const (
	// SparkleCount is the number of sparkles emitted per transition window
	SparkleCount = 24

	// ConfettiCount is the number of confetti pieces released by the opening gift
	ConfettiCount = 30
)

// Cursor & pulse
const (
	// CursorBlinkInterval is the blink half-period of the typewriter caret
	CursorBlinkInterval = 500 * time.Millisecond

	// PulsePeriod is the breathing period of the "click to open" hint
	PulsePeriod = 2 * time.Second
)

// Photo loading
const (
	// PhotoFetchTimeout bounds one remote photo download
	PhotoFetchTimeout = 15 * time.Second

	// MaxPhotoBytes caps the bytes read for one photo
	MaxPhotoBytes = 32 << 20
)
