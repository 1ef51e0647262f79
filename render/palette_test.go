package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestFadeEndpoints(t *testing.T) {
	p := DefaultPalette()
	if got, want := Fade(p.Background, p.Ink, 0), Cell(p.Background); got != want {
		t.Errorf("Fade(0) = %v, want %v", got, want)
	}
	if got, want := Fade(p.Background, p.Ink, 1), Cell(p.Ink); got != want {
		t.Errorf("Fade(1) = %v, want %v", got, want)
	}
	if got, want := Fade(p.Background, p.Ink, 3), Cell(p.Ink); got != want {
		t.Errorf("Fade(3) = %v, want clamped %v", got, want)
	}
}

func TestCell(t *testing.T) {
	c := colorful.Color{R: 1, G: 0, B: 0}
	if got := Cell(c); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Cell(red) = %v", got)
	}
	// Out-of-gamut values clamp
	over := colorful.Color{R: 1.4, G: -0.2, B: 0}
	if got := Cell(over); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Cell(over) = %v", got)
	}
}

func TestLighten(t *testing.T) {
	p := DefaultPalette()
	if got := Lighten(p.Card, 0); got.Hex() != p.Card.Hex() {
		t.Errorf("Lighten(0) = %s, want %s", got.Hex(), p.Card.Hex())
	}
	if got := Lighten(p.Card, 1); got.Hex() != "#ffffff" {
		t.Errorf("Lighten(1) = %s, want #ffffff", got.Hex())
	}
}
