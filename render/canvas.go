package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x,y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns a w x h rectangle centred in r, shrunk to fit
func (r Rect) Center(w, h int) Rect {
	w = min(w, r.W)
	h = min(h, r.H)
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Inset shrinks r by dx columns and dy rows on every side
func (r Rect) Inset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: max(0, r.W-2*dx), H: max(0, r.H-2*dy)}
}

// Canvas draws onto a tcell screen, clipping to its bounds
type Canvas struct {
	screen tcell.Screen
	w, h   int
}

// NewCanvas wraps screen at its current size
func NewCanvas(screen tcell.Screen) *Canvas {
	w, h := screen.Size()
	return &Canvas{screen: screen, w: w, h: h}
}

// Bounds returns the full screen rectangle
func (c *Canvas) Bounds() Rect {
	return Rect{W: c.w, H: c.h}
}

// Put sets one cell
func (c *Canvas) Put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// Fill paints rect with r
func (c *Canvas) Fill(rect Rect, r rune, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			c.Put(x, y, r, style)
		}
	}
}

// Text writes s from (x,y) and returns the x after the last cell
// Wide runes take two cells
func (c *Canvas) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.Put(x, y, r, style)
		w := runewidth.RuneWidth(r)
		if w == 2 {
			c.Put(x+1, y, ' ', style)
		}
		if w < 1 {
			w = 1
		}
		x += w
	}
	return x
}

// CenterText writes s centred on row y of rect and returns the rectangle it covers
func (c *Canvas) CenterText(rect Rect, y int, s string, style tcell.Style) Rect {
	w := runewidth.StringWidth(s)
	if w > rect.W {
		s = runewidth.Truncate(s, rect.W, "…")
		w = runewidth.StringWidth(s)
	}
	x := rect.X + (rect.W-w)/2
	c.Text(x, y, s, style)
	return Rect{X: x, Y: y, W: w, H: 1}
}

// Frame draws a rounded border on the edge of rect
func (c *Canvas) Frame(rect Rect, style tcell.Style) {
	if rect.W < 2 || rect.H < 2 {
		return
	}
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W-1, rect.Y+rect.H-1
	for x := x0 + 1; x < x1; x++ {
		c.Put(x, y0, '─', style)
		c.Put(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		c.Put(x0, y, '│', style)
		c.Put(x1, y, '│', style)
	}
	c.Put(x0, y0, '╭', style)
	c.Put(x1, y0, '╮', style)
	c.Put(x0, y1, '╰', style)
	c.Put(x1, y1, '╯', style)
}
