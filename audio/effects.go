package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/giftcard/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave generator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
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
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// bell is a sine fundamental with a quickly fading octave
func bell(freq float64, duration, attack, fundRelease, overRelease time.Duration, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(freq, duration, WaveSine, rate), duration, attack, fundRelease, rate)
	over := NewEnvelope(NewOscillator(freq*2, duration, WaveSine, rate), duration, attack, overRelease, rate)
	return beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
}

// CreateChime generates the two-bell chime that greets the blessing
func CreateChime(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// C6 then G6, overlapping
	first := bell(NoteFreq(84), constants.ChimeDuration, constants.ChimeAttack,
		constants.ChimeFundamentalRelease, constants.ChimeOvertoneRelease, rate)
	second := beep.Seq(
		beep.Silence(rate.N(constants.ChimeDuration/4)),
		bell(NoteFreq(91), constants.ChimeDuration, constants.ChimeAttack,
			constants.ChimeFundamentalRelease, constants.ChimeOvertoneRelease, rate),
	)

	return newVolume(beep.Mix(first, second), cfg.effectVolume(CueChime))
}

// CreateSparkle generates a quick rising triad for layer transitions
func CreateSparkle(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := []int{88, 92, 95} // E6 G#6 B6
	parts := make([]beep.Streamer, len(notes))
	for i, midi := range notes {
		osc := NewOscillator(NoteFreq(midi), constants.SparkleNoteDuration, WaveTriangle, rate)
		parts[i] = NewEnvelope(osc, constants.SparkleNoteDuration, constants.SparkleAttack, constants.SparkleRelease, rate)
	}

	return newVolume(beep.Seq(parts...), cfg.effectVolume(CueSparkle))
}

// CreateEffect returns the streamer for cue, nil for unknown cues
func CreateEffect(cue Cue, cfg *Config) beep.Streamer {
	switch cue {
	case CueChime:
		return CreateChime(cfg)
	case CueSparkle:
		return CreateSparkle(cfg)
	default:
		return nil
	}
}

// lullabyNote is one melody entry: a MIDI note (0 for a rest) held for beats
type lullabyNote struct {
	midi  int
	beats float64
}

// lullabyMelody is the opening of Brahms' lullaby
var lullabyMelody = []lullabyNote{
	{64, 0.5}, {64, 0.5}, {67, 2},
	{64, 0.5}, {64, 0.5}, {67, 2},
	{64, 0.5}, {67, 0.5}, {72, 1}, {71, 1.5}, {69, 0.5}, {69, 1}, {67, 1},
	{62, 0.5}, {64, 0.5}, {65, 1}, {62, 1}, {62, 0.5}, {64, 0.5}, {65, 2},
	{62, 0.5}, {65, 0.5}, {71, 0.5}, {69, 0.5}, {67, 1}, {71, 1}, {72, 2},
	{0, 2},
}

// lullabyStepsPerBeat is the sequencer resolution: eighth notes
const lullabyStepsPerBeat = 2

// LullabyPattern lays the melody out on sequencer steps
func LullabyPattern() *MelodyPattern {
	p := &MelodyPattern{}
	for _, n := range lullabyMelody {
		steps := int(n.beats * lullabyStepsPerBeat)
		if n.midi != 0 {
			p.Notes = append(p.Notes, NoteTrigger{Step: p.Length, Note: n.midi, Velocity: 0.5, Duration: steps})
		}
		p.Length += steps
	}
	return p
}

// Lullaby renders the built-in melody into a seekable buffer at rate
func Lullaby(rate beep.SampleRate) *beep.Buffer {
	seq := NewSequencer(LullabyPattern(), constants.LullabyBeat/lullabyStepsPerBeat,
		constants.LullabyAttack, constants.LullabyRelease, rate)

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(seq)
	return buf
}
