package card

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/giftcard/constants"
)

// Particle is a decorative glyph in coordinates normalized to its drawing area
// Emitters only place particles; where a particle is at a given moment is a pure function
// of its fields and the elapsed time
type Particle struct {
	X, Y     float64
	Delay    time.Duration
	Duration time.Duration
	Glyph    rune
}

// EmitBlessing places the floating particles of the final blessing
// Particle i starts i*stagger late and bounces with a randomized period
func EmitBlessing(rng *rand.Rand, n int) []Particle {
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			X:        rng.Float64(),
			Y:        0.15 + 0.7*rng.Float64(),
			Delay:    time.Duration(i) * constants.ParticleStagger,
			Duration: constants.ParticleBaseDuration + time.Duration(rng.Float64()*float64(constants.ParticleDurationJitter)),
			Glyph:    constants.GlyphParticle,
		}
	}
	return out
}

// EmitSparkles scatters the sparkles shown during a transition window
// Every sparkle finishes within window
func EmitSparkles(rng *rand.Rand, n int, window time.Duration) []Particle {
	if window <= 0 {
		window = constants.TransitionWindow
	}
	out := make([]Particle, n)
	for i := range out {
		life := window/3 + time.Duration(rng.Float64()*float64(window/3))
		out[i] = Particle{
			X:        rng.Float64(),
			Y:        rng.Float64(),
			Delay:    time.Duration(rng.Float64() * float64(window-life)),
			Duration: life,
			Glyph:    constants.SparkleGlyphs[0],
		}
	}
	return out
}

// EmitConfetti releases confetti from the centre of the gift box lid
func EmitConfetti(rng *rand.Rand, n int, span time.Duration) []Particle {
	if span <= 0 {
		span = constants.OpeningDuration
	}
	glyphs := constants.ConfettiGlyphs
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			X:        0.5 + (rng.Float64()-0.5)*0.6,
			Y:        1,
			Delay:    time.Duration(rng.Float64() * float64(span/3)),
			Duration: span/2 + time.Duration(rng.Float64()*float64(span/6)),
			Glyph:    glyphs[rng.IntN(len(glyphs))],
		}
	}
	return out
}

// local returns the particle's own elapsed time and whether it has started
func (p Particle) local(elapsed time.Duration) (time.Duration, bool) {
	t := elapsed - p.Delay
	return t, t >= 0
}

// Bounce returns the position of a looping bouncing particle
func (p Particle) Bounce(elapsed time.Duration) (x, y float64, visible bool) {
	t, ok := p.local(elapsed)
	if !ok || p.Duration <= 0 {
		return 0, 0, false
	}
	phase := float64(t%p.Duration) / float64(p.Duration)
	lift := math.Abs(math.Sin(phase * math.Pi))
	return p.X, clamp01(p.Y - 0.12*lift), true
}

// Twinkle returns the glyph of a one-shot sparkle at elapsed, cycling through the sparkle set
func (p Particle) Twinkle(elapsed time.Duration) (glyph rune, visible bool) {
	t, ok := p.local(elapsed)
	if !ok || p.Duration <= 0 || t >= p.Duration {
		return 0, false
	}
	frames := constants.SparkleGlyphs
	idx := int(float64(t) / float64(p.Duration) * float64(len(frames)))
	if idx >= len(frames) {
		idx = len(frames) - 1
	}
	return frames[idx], true
}

// Rise returns the position of a one-shot rising confetti piece
// y goes from the particle's origin up towards 0 while drifting sideways
func (p Particle) Rise(elapsed time.Duration) (x, y float64, visible bool) {
	t, ok := p.local(elapsed)
	if !ok || p.Duration <= 0 || t >= p.Duration {
		return 0, 0, false
	}
	f := float64(t) / float64(p.Duration)
	drift := (p.X - 0.5) * f
	return clamp01(p.X + drift), clamp01(p.Y * (1 - easeOut(f))), true
}

func easeOut(f float64) float64 {
	return 1 - (1-f)*(1-f)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
