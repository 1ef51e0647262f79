package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/giftcard/card"
	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
	"github.com/lixenwraith/giftcard/engine/status"
)

// Hit is a clickable region of the last frame
type Hit struct {
	Rect   Rect
	Action card.Action
}

// Renderer draws a card session onto a tcell screen
// It is driven from the event loop goroutine only
type Renderer struct {
	screen  tcell.Screen
	palette Palette
	gallery *content.Gallery
	reg     *status.Registry

	diagnostics bool
	hits        []Hit
	frames      int64
}

// NewRenderer creates a renderer for screen; reg feeds the diagnostics line and may be nil
func NewRenderer(screen tcell.Screen, gallery *content.Gallery, reg *status.Registry) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: DefaultPalette(),
		gallery: gallery,
		reg:     reg,
	}
}

// SetGallery replaces the photo source after a content reload
func (r *Renderer) SetGallery(g *content.Gallery) {
	r.gallery = g
}

// ToggleDiagnostics flips the status line
func (r *Renderer) ToggleDiagnostics() bool {
	r.diagnostics = !r.diagnostics
	return r.diagnostics
}

// Hits returns the clickable regions of the last frame
func (r *Renderer) Hits() []Hit {
	return r.hits
}

// HitTest returns the action under cell (x,y); later regions sit on top of earlier ones
func (r *Renderer) HitTest(x, y int) (card.Action, bool) {
	for i := len(r.hits) - 1; i >= 0; i-- {
		if r.hits[i].Rect.Contains(x, y) {
			return r.hits[i].Action, true
		}
	}
	return card.ActionNone, false
}

func (r *Renderer) addHit(rect Rect, a card.Action) {
	r.hits = append(r.hits, Hit{Rect: rect, Action: a})
}

// styles used by one frame
type frameStyles struct {
	page  tcell.Style
	panel tcell.Style
	ink   tcell.Style
}

func (r *Renderer) styles() frameStyles {
	p := r.palette
	return frameStyles{
		page:  tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Cell(p.Ink)),
		panel: tcell.StyleDefault.Background(Cell(p.Card)).Foreground(Cell(p.Ink)),
		ink:   tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Cell(p.Ink)),
	}
}

// Frame draws the whole session and shows it
func (r *Renderer) Frame(s *card.Session) {
	r.frames++
	r.hits = r.hits[:0]

	c := NewCanvas(r.screen)
	st := r.styles()
	now := s.Now()
	c.Fill(c.Bounds(), ' ', st.page)

	b := c.Bounds()
	if b.W < constants.MinWidth || b.H < constants.MinHeight {
		c.CenterText(b, b.H/2, fmt.Sprintf("terminal too small, need %dx%d", constants.MinWidth, constants.MinHeight), st.ink)
		r.screen.Show()
		return
	}

	switch v := s.View().(type) {
	case *card.GiftBoxView:
		r.drawGiftBox(c, s, v, now)
	case *card.GreetingView:
		r.drawGreeting(c, s, v, now)
	case *card.LetterView:
		r.drawLetter(c, s, v, now)
	case *card.CarouselView:
		r.drawCarousel(c, s, v, now)
	case *card.BlessingView:
		r.drawBlessing(c, s, v, now)
	}

	r.drawSparkles(c, s, now)
	r.drawMusicToggle(c, s)
	if r.diagnostics {
		r.drawDiagnostics(c, s)
	}
	r.screen.Show()
}

// drawSparkles overlays the transition burst on the whole screen
func (r *Renderer) drawSparkles(c *Canvas, s *card.Session, now time.Time) {
	sparkles, start := s.Sparkles()
	if len(sparkles) == 0 {
		return
	}
	b := c.Bounds()
	elapsed := now.Sub(start)
	base := tcell.StyleDefault.Background(Cell(r.palette.Background))
	for i, p := range sparkles {
		g, ok := p.Twinkle(elapsed)
		if !ok {
			continue
		}
		col := r.palette.Sparkle
		if i%3 == 0 {
			col = Lighten(col, 0.4)
		}
		x := int(p.X * float64(b.W-1))
		y := int(p.Y * float64(b.H-1))
		c.Put(x, y, g, base.Foreground(Cell(col)))
	}
}

// drawMusicToggle places the round music button in the bottom-right corner
func (r *Renderer) drawMusicToggle(c *Canvas, s *card.Session) {
	b := c.Bounds()
	glyph := constants.GlyphMusicOff
	fg := Lighten(r.palette.Ink, 0.45)
	if s.Audio().Playing() {
		glyph = constants.GlyphMusicOn
		fg = r.palette.Ink
	}
	style := tcell.StyleDefault.Background(Cell(r.palette.Card)).Foreground(Cell(fg))
	rect := Rect{X: b.W - 6, Y: b.H - 2, W: 5, H: 1}
	c.Text(rect.X, rect.Y, fmt.Sprintf("( %c )", glyph), style)
	r.addHit(rect, card.ActionToggleMusic)
}

// drawDiagnostics writes the status line on the top row
func (r *Renderer) drawDiagnostics(c *Canvas, s *card.Session) {
	m := s.Machine()
	line := fmt.Sprintf(" %s | %s | %s gen=%d frames=%d", shortID(s.ID()), m.Config().Variant, s.Layer(), m.Generation(), r.frames)
	if sum := r.reg.Summary(); sum != "" {
		line += " | " + sum
	}
	style := tcell.StyleDefault.Background(Cell(r.palette.Ink)).Foreground(Cell(r.palette.Background))
	b := c.Bounds()
	c.Fill(Rect{W: b.W, H: 1}, ' ', style)
	c.Text(0, 0, line, style)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// button draws a pill button centred on row y of area when action is available
func (r *Renderer) button(c *Canvas, s *card.Session, area Rect, y int, label string, a card.Action) {
	if !s.Available(a) {
		return
	}
	style := tcell.StyleDefault.Background(Cell(r.palette.Ink)).Foreground(Cell(r.palette.Background)).Bold(true)
	rect := c.CenterText(area, y, "  "+label+"  ", style)
	r.addHit(rect, a)
}
