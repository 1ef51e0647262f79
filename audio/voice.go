package audio

import "math"

// envStage is the phase of a voice envelope
type envStage int

const (
	envIdle envStage = iota
	envAttack
	envSustain
	envRelease
)

// TonalVoice is one pitched note: a sine with a soft triangle octave under a linear envelope
type TonalVoice struct {
	rate     float64
	freq     float64
	velocity float64
	phase    float64

	stage   envStage
	level   float64
	pos     int
	attack  int
	hold    int
	release int
}

// NewTonalVoice creates an idle voice for a sample rate
func NewTonalVoice(rate int) *TonalVoice {
	return &TonalVoice{rate: float64(rate)}
}

// Trigger starts note, holding it for holdSamples before the release tail
func (v *TonalVoice) Trigger(note int, velocity float64, holdSamples, attack, release int) {
	v.freq = NoteFreq(note)
	v.velocity = velocity
	v.phase = 0
	v.stage = envAttack
	v.level = 0
	v.pos = 0
	v.attack = attack
	v.hold = max(holdSamples-attack, 0)
	v.release = release
}

// Active reports whether the voice is sounding
func (v *TonalVoice) Active() bool {
	return v.stage != envIdle
}

// Level returns the current envelope level in [0,1]
func (v *TonalVoice) Level() float64 {
	return v.level
}

// Sample returns the next mono sample and advances the voice
func (v *TonalVoice) Sample() float64 {
	if v.stage == envIdle {
		return 0
	}

	raw := 0.85*math.Sin(2*math.Pi*v.phase) + 0.15*(1-4*math.Abs(math.Mod(2*v.phase, 1)-0.5))
	v.phase += v.freq / v.rate
	v.phase -= math.Floor(v.phase)

	v.advanceEnvelope()
	return raw * v.level * v.velocity
}

func (v *TonalVoice) advanceEnvelope() {
	switch v.stage {
	case envAttack:
		v.level = 1
		if v.attack > 0 {
			v.level = float64(v.pos) / float64(v.attack)
		}
		v.pos++
		if v.pos >= v.attack {
			v.stage, v.pos = envSustain, 0
		}
	case envSustain:
		v.level = 1
		v.pos++
		if v.pos >= v.hold {
			v.stage, v.pos = envRelease, 0
		}
	case envRelease:
		v.level = 0
		if v.release > 0 {
			v.level = 1 - float64(v.pos)/float64(v.release)
		}
		v.pos++
		if v.pos >= v.release {
			v.stage, v.level = envIdle, 0
		}
	}
}

// Reset silences the voice
func (v *TonalVoice) Reset() {
	v.stage = envIdle
	v.level = 0
	v.pos = 0
}
