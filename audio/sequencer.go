package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// MaxPolyphony is the number of voices a sequencer can sound at once
const MaxPolyphony = 4

// NoteTrigger starts a note at a pattern step
type NoteTrigger struct {
	Step     int
	Note     int // MIDI
	Velocity float64
	Duration int // Steps held before release
}

// MelodyPattern is a fixed sequence of note triggers over Length steps
type MelodyPattern struct {
	Length int
	Notes  []NoteTrigger
}

// Sequencer plays a melody pattern once as a beep.Streamer
type Sequencer struct {
	pattern        *MelodyPattern
	samplesPerStep int
	attack         int
	release        int
	volume         float64

	voices [MaxPolyphony]*TonalVoice

	step int
	pos  int
}

// NewSequencer prepares pattern at one step per stepDuration
func NewSequencer(pattern *MelodyPattern, stepDuration, attack, release time.Duration, rate beep.SampleRate) *Sequencer {
	s := &Sequencer{
		pattern:        pattern,
		samplesPerStep: max(rate.N(stepDuration), 1),
		attack:         rate.N(attack),
		release:        rate.N(release),
		volume:         1,
	}
	for i := range s.voices {
		s.voices[i] = NewTonalVoice(int(rate))
	}
	return s
}

// SetVolume scales the output, clamped to [0,1]
func (s *Sequencer) SetVolume(vol float64) {
	s.volume = min(max(vol, 0), 1)
}

// Len returns the length of the pattern in samples
func (s *Sequencer) Len() int {
	return s.pattern.Length * s.samplesPerStep
}

// Stream renders the pattern; it ends after the last step
func (s *Sequencer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.step >= s.pattern.Length {
			return i, i > 0
		}
		if s.pos == 0 {
			s.triggerStep(s.step)
		}

		var sum float64
		for _, v := range s.voices {
			sum += v.Sample()
		}
		sum *= s.volume
		samples[i][0] = sum
		samples[i][1] = sum

		s.pos++
		if s.pos >= s.samplesPerStep {
			s.pos = 0
			s.step++
		}
	}
	return len(samples), true
}

func (s *Sequencer) Err() error { return nil }

func (s *Sequencer) triggerStep(step int) {
	for _, trig := range s.pattern.Notes {
		if trig.Step != step {
			continue
		}
		s.allocateVoice().Trigger(trig.Note, trig.Velocity, trig.Duration*s.samplesPerStep, s.attack, s.release)
	}
}

// allocateVoice returns a free voice, or steals the one furthest into its decay
func (s *Sequencer) allocateVoice() *TonalVoice {
	quietest := s.voices[0]
	for _, v := range s.voices {
		if !v.Active() {
			return v
		}
		if v.Level() < quietest.Level() {
			quietest = v
		}
	}
	return quietest
}

// Reset rewinds to the first step and silences every voice
func (s *Sequencer) Reset() {
	s.step, s.pos = 0, 0
	for _, v := range s.voices {
		v.Reset()
	}
}
