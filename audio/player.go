package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/giftcard/constants"
)

// Player loops one music track and mixes short cues over it
// It satisfies the card's media handle: playback starts paused and Play/Pause flip a beep.Ctrl
type Player struct {
	mu     sync.Mutex
	cfg    *Config
	out    Output
	logger *log.Logger

	rate  beep.SampleRate
	mixer *beep.Mixer
	music beep.StreamSeeker
	ctrl  *beep.Ctrl
	ready bool
}

// NewPlayer creates an uninitialized player; out may be nil for the system speaker
func NewPlayer(cfg *Config, out Output, logger *log.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if out == nil {
		out = SpeakerOutput{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		cfg:    cfg,
		out:    out,
		logger: logger,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the device and queues the paused music
// A music file that fails to load falls back to the built-in lullaby
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if !p.cfg.Enabled {
		return ErrDisabled
	}

	track := p.loadTrack()

	if err := p.out.Init(p.rate, constants.SpeakerBufferDuration); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	p.music = track.Streamer(0, track.Len())
	p.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, p.music), Paused: true}
	p.mixer.Add(newVolume(p.ctrl, p.cfg.MasterVolume))
	p.out.Play(p.mixer)
	p.ready = true

	p.logger.Info("audio ready", "rate", int(p.rate), "track_seconds", p.rate.D(track.Len()).Seconds())
	return nil
}

func (p *Player) loadTrack() *beep.Buffer {
	if p.cfg.Music != "" {
		buf, err := LoadMusic(p.cfg.Music, p.rate)
		if err == nil {
			p.logger.Debug("music loaded", "path", p.cfg.Music)
			return buf
		}
		p.logger.Warn("music file unusable, playing lullaby", "path", p.cfg.Music, "err", err)
	}
	return Lullaby(p.rate)
}

// Play resumes the music
func (p *Player) Play() error {
	return p.setPaused(false)
}

// Pause suspends the music, keeping its position
func (p *Player) Pause() error {
	return p.setPaused(true)
}

func (p *Player) setPaused(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return ErrNotReady
	}
	p.out.Lock()
	p.ctrl.Paused = paused
	p.out.Unlock()
	return nil
}

// Rewind seeks the music to its start without changing play/pause state
func (p *Player) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return nil
	}
	p.out.Lock()
	err := p.music.Seek(0)
	p.out.Unlock()
	return err
}

// Playing reports whether music is audible
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return false
	}
	p.out.Lock()
	defer p.out.Unlock()
	return !p.ctrl.Paused
}

// Position returns the music position in samples
func (p *Player) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return 0
	}
	p.out.Lock()
	defer p.out.Unlock()
	return p.music.Position()
}

// Chime plays the blessing cue
func (p *Player) Chime() {
	p.playCue(CueChime)
}

// Sparkle plays the transition cue
func (p *Player) Sparkle() {
	p.playCue(CueSparkle)
}

func (p *Player) playCue(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	s := CreateEffect(cue, p.cfg)
	if s == nil {
		return
	}
	p.out.Lock()
	p.mixer.Add(s)
	p.out.Unlock()
}

// Close silences everything and releases the device
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	p.out.Lock()
	p.ctrl.Paused = true
	p.mixer.Clear()
	p.out.Unlock()
	p.out.Close()
	p.ready = false
}
