package card

import (
	"errors"
	"testing"

	"github.com/lixenwraith/giftcard/engine/status"
)

var errIntentional = errors.New("intentional failure")

// fakeMedia is a scriptable media handle
type fakeMedia struct {
	playing  bool
	playErr  error
	pauseErr error
	rewinds  int
	// stateOnFail is what Playing reports after a failed request
	stateOnFail bool
}

func (f *fakeMedia) Play() error {
	if f.playErr != nil {
		f.playing = f.stateOnFail
		return f.playErr
	}
	f.playing = true
	return nil
}

func (f *fakeMedia) Pause() error {
	if f.pauseErr != nil {
		f.playing = f.stateOnFail
		return f.pauseErr
	}
	f.playing = false
	return nil
}

func (f *fakeMedia) Rewind() error {
	f.rewinds++
	return nil
}

func (f *fakeMedia) Playing() bool { return f.playing }

func TestAudioToggleFlips(t *testing.T) {
	media := &fakeMedia{}
	reg := status.NewRegistry()
	a := NewAudioToggle(media, nil, reg)

	if !a.Toggle() || !media.playing {
		t.Fatal("first toggle should start playback")
	}
	if a.Toggle() || media.playing {
		t.Fatal("second toggle should pause")
	}
	if got := reg.Counter("audio.toggles").Load(); got != 2 {
		t.Errorf("audio.toggles = %d, want 2", got)
	}
}

// TestAudioToggleFailingPlay keeps the flag false when the handle refuses to play
func TestAudioToggleFailingPlay(t *testing.T) {
	media := &fakeMedia{playErr: errors.New("not ready")}
	reg := status.NewRegistry()
	a := NewAudioToggle(media, nil, reg)

	for i := 0; i < 3; i++ {
		if a.Toggle() {
			t.Fatalf("toggle %d reported playing with a failing handle", i)
		}
	}
	if a.LastError() == nil {
		t.Error("LastError() should hold the swallowed failure")
	}
	if got := reg.Counter("audio.failures").Load(); got != 3 {
		t.Errorf("audio.failures = %d, want 3", got)
	}

	media.playErr = nil
	if !a.Toggle() || a.LastError() != nil {
		t.Error("toggle should recover once the handle works")
	}
}

// TestAudioToggleResyncs trusts the handle's own state after a failed pause
func TestAudioToggleResyncs(t *testing.T) {
	media := &fakeMedia{}
	a := NewAudioToggle(media, nil, nil)
	a.Toggle()

	media.pauseErr = errors.New("device lost")
	media.stateOnFail = false
	if a.Toggle() {
		t.Error("flag should follow the handle, which stopped")
	}
}

func TestAudioToggleNoMedia(t *testing.T) {
	a := NewAudioToggle(nil, nil, nil)
	if a.Toggle() {
		t.Error("NoMedia cannot play")
	}
	if !errors.Is(a.LastError(), ErrNoMedia) {
		t.Errorf("LastError() = %v", a.LastError())
	}
}

func TestAudioRewindKeepsState(t *testing.T) {
	media := &fakeMedia{}
	a := NewAudioToggle(media, nil, nil)
	a.Toggle()
	a.Rewind()
	if !a.Playing() || media.rewinds != 1 {
		t.Errorf("playing=%v rewinds=%d", a.Playing(), media.rewinds)
	}
}
