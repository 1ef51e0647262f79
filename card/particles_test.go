package card

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/giftcard/constants"
)

func TestEmitBlessing(t *testing.T) {
	ps := EmitBlessing(rand.New(rand.NewPCG(1, 2)), constants.ParticleCount)
	if len(ps) != 20 {
		t.Fatalf("len = %d, want 20", len(ps))
	}
	for i, p := range ps {
		if p.Delay != time.Duration(i)*200*time.Millisecond {
			t.Errorf("particle %d delay = %v", i, p.Delay)
		}
		if p.Duration < 3*time.Second || p.Duration > 5*time.Second {
			t.Errorf("particle %d duration = %v, want 3s..5s", i, p.Duration)
		}
		if p.X < 0 || p.X >= 1 {
			t.Errorf("particle %d x = %v", i, p.X)
		}
	}

	if _, _, ok := ps[5].Bounce(500 * time.Millisecond); ok {
		t.Error("particle 5 should not be visible before its 1s delay")
	}
	x, y, ok := ps[5].Bounce(2 * time.Second)
	if !ok || x != ps[5].X || y > ps[5].Y {
		t.Errorf("Bounce = %v,%v,%v", x, y, ok)
	}
}

func TestEmitSparklesFitWindow(t *testing.T) {
	window := constants.TransitionWindow
	for _, p := range EmitSparkles(rand.New(rand.NewPCG(3, 4)), 50, window) {
		if p.Delay+p.Duration > window {
			t.Errorf("sparkle ends at %v, after the %v window", p.Delay+p.Duration, window)
		}
		if _, ok := p.Twinkle(p.Delay + p.Duration); ok {
			t.Error("sparkle visible after its lifetime")
		}
		if g, ok := p.Twinkle(p.Delay); !ok || g != constants.SparkleGlyphs[0] {
			t.Errorf("sparkle start glyph = %q, %v", g, ok)
		}
	}
}

func TestConfettiRises(t *testing.T) {
	for _, p := range EmitConfetti(rand.New(rand.NewPCG(5, 6)), 10, constants.OpeningDuration) {
		_, y0, ok0 := p.Rise(p.Delay)
		_, y1, ok1 := p.Rise(p.Delay + p.Duration/2)
		if !ok0 || !ok1 || y1 >= y0 {
			t.Errorf("confetti did not rise: %v -> %v", y0, y1)
		}
		if _, _, ok := p.Rise(p.Delay + p.Duration); ok {
			t.Error("confetti visible after its lifetime")
		}
	}
}
