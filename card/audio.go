package card

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/giftcard/engine/status"
)

// MediaHandle is the playback collaborator behind the music toggle
type MediaHandle interface {
	// Play starts or resumes playback; it fails when the media is not ready
	Play() error
	// Pause suspends playback, keeping the position
	Pause() error
	// Rewind seeks back to the start without changing play/pause state
	Rewind() error
	// Playing reports the handle's actual state
	Playing() bool
}

// NoMedia is the handle used when audio is disabled; every request fails
type NoMedia struct{}

func (NoMedia) Play() error   { return ErrNoMedia }
func (NoMedia) Pause() error  { return nil }
func (NoMedia) Rewind() error { return nil }
func (NoMedia) Playing() bool { return false }

// AudioToggle mirrors a binary playing flag onto a media handle
// Failures are logged and swallowed; after a failure the flag is re-read from the handle
type AudioToggle struct {
	handle  MediaHandle
	playing bool
	lastErr error
	logger  *log.Logger

	statFailures *atomic.Int64
	statToggles  *atomic.Int64
}

// NewAudioToggle wraps handle, which may be nil; logger may be nil
func NewAudioToggle(handle MediaHandle, logger *log.Logger, reg *status.Registry) *AudioToggle {
	if handle == nil {
		handle = NoMedia{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &AudioToggle{
		handle:       handle,
		playing:      handle.Playing(),
		logger:       logger,
		statFailures: reg.Counter("audio.failures"),
		statToggles:  reg.Counter("audio.toggles"),
	}
}

// Toggle requests the opposite of the current state and returns the resulting state
func (a *AudioToggle) Toggle() bool {
	want := !a.playing

	var err error
	if want {
		err = a.handle.Play()
	} else {
		err = a.handle.Pause()
	}

	if err != nil {
		a.lastErr = err
		a.statFailures.Add(1)
		a.playing = a.handle.Playing()
		a.logger.Warn("music toggle failed", "want_playing", want, "playing", a.playing, "err", err)
		return a.playing
	}

	a.lastErr = nil
	a.playing = want
	a.statToggles.Add(1)
	a.logger.Debug("music toggled", "playing", a.playing)
	return a.playing
}

// Rewind moves playback to the start; play/pause state is untouched
func (a *AudioToggle) Rewind() {
	if err := a.handle.Rewind(); err != nil {
		a.lastErr = err
		a.statFailures.Add(1)
		a.logger.Warn("music rewind failed", "err", err)
	}
}

// Playing reports the mirrored state
func (a *AudioToggle) Playing() bool {
	return a.playing
}

// LastError returns the most recent swallowed failure, nil after a success
func (a *AudioToggle) LastError() error {
	return a.lastErr
}

// Handle returns the underlying media handle
func (a *AudioToggle) Handle() MediaHandle {
	return a.handle
}
