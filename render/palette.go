package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/giftcard/constants"
)

// Palette holds the card colours in a blendable space
type Palette struct {
	Background colorful.Color
	Card       colorful.Color
	Ink        colorful.Color
	Particle   colorful.Color
	Sparkle    colorful.Color
	Heart      colorful.Color
}

// DefaultPalette returns the warm paper-and-ink palette
func DefaultPalette() Palette {
	return Palette{
		Background: colorful.MustParseHex(constants.ColorBackground),
		Card:       colorful.MustParseHex(constants.ColorCard),
		Ink:        colorful.MustParseHex(constants.ColorInk),
		Particle:   colorful.MustParseHex(constants.ColorParticle),
		Sparkle:    colorful.MustParseHex(constants.ColorSparkle),
		Heart:      colorful.MustParseHex(constants.ColorHeart),
	}
}

// Cell converts a colorful colour into a terminal colour
func Cell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Fade blends from bg towards fg by t in [0,1], in Lab space so mid-tones stay warm
func Fade(bg, fg colorful.Color, t float64) tcell.Color {
	return Cell(bg.BlendLab(fg, clamp01(t)))
}

// Lighten moves c towards white by t
func Lighten(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, clamp01(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
