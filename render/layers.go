package render

import (
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/giftcard/card"
	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
)

// buttonRows is the space kept under a panel for its button
const buttonRows = 3

// fadeIn returns the fade-in progress of something shown at start
func fadeIn(start, now time.Time, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(start)) / float64(d))
}

// panelStyle is the card surface with ink faded in by t
func (r *Renderer) panelStyle(t float64) tcell.Style {
	return tcell.StyleDefault.Background(Cell(r.palette.Card)).Foreground(Fade(r.palette.Card, r.palette.Ink, t))
}

func (r *Renderer) drawGiftBox(c *Canvas, s *card.Session, v *card.GiftBoxView, now time.Time) {
	p := r.palette
	area := c.Bounds().Center(constants.GiftBoxWidth, constants.GiftBoxHeight+buttonRows)
	box := Rect{X: area.X, Y: area.Y + 1, W: area.W, H: area.H - buttonRows - 1}

	open := s.Machine().OpeningProgress(now)
	lift := int(math.Round(open * 3))

	const lidRows = 3
	body := Rect{X: box.X, Y: box.Y + lidRows, W: box.W, H: box.H - lidRows}
	lid := Rect{X: box.X - 1, Y: box.Y - lift, W: box.W + 2, H: lidRows}

	// Warm highlight from the top-left corner
	for y := body.Y; y < body.Y+body.H; y++ {
		for x := body.X; x < body.X+body.W; x++ {
			t := (float64(x-body.X)/float64(body.W) + float64(y-body.Y)/float64(body.H)) / 2
			glow := Lighten(p.Card, 0.3*(1-t))
			c.Put(x, y, ' ', tcell.StyleDefault.Background(Cell(glow)))
		}
	}
	edge := tcell.StyleDefault.Background(Cell(p.Card)).Foreground(Cell(p.Ink))
	c.Frame(body, edge)

	lidFill := Lighten(p.Card, 0.15)
	c.Fill(lid, ' ', tcell.StyleDefault.Background(Cell(lidFill)))
	c.Frame(lid, tcell.StyleDefault.Background(Cell(lidFill)).Foreground(Cell(p.Ink)))

	cx := box.X + box.W/2
	ribbon := tcell.StyleDefault.Background(Cell(p.Heart)).Foreground(Cell(p.Heart))
	for y := body.Y; y < body.Y+body.H; y++ {
		c.Put(cx, y, constants.GlyphRibbonV, ribbon)
	}
	for y := lid.Y; y < lid.Y+lid.H; y++ {
		c.Put(cx, y, constants.GlyphRibbonV, ribbon)
	}
	band := lid.Y + lid.H/2
	for x := lid.X + 1; x < lid.X+lid.W-1; x++ {
		c.Put(x, band, constants.GlyphRibbonH, ribbon)
	}
	c.Put(cx, band, constants.GlyphRibbonCross, ribbon)
	bow := tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Cell(p.Heart)).Bold(true)
	c.Text(cx-2, lid.Y-1, "❀ ❀", bow)

	// Title sits on a tag across the ribbon
	lines := v.Title
	ty := body.Y + (body.H-len(lines))/2
	tag := tcell.StyleDefault.Background(Cell(Lighten(p.Card, 0.45))).Foreground(Cell(p.Ink)).Bold(true)
	for i, line := range lines {
		c.CenterText(body, ty+i, " "+line+" ", tag)
	}

	if !s.Machine().Opened() {
		phase := float64(now.Sub(v.MountedAt())%constants.PulsePeriod) / float64(constants.PulsePeriod)
		pulse := 0.5 + 0.5*math.Cos(2*math.Pi*phase)
		hint := tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Fade(p.Background, p.Ink, 0.35+0.65*pulse))
		c.CenterText(area, box.Y+box.H+1, v.Hint, hint)
	}

	if s.Available(card.ActionOpen) {
		r.addHit(Rect{X: lid.X, Y: lid.Y, W: lid.W, H: body.Y + body.H - lid.Y}, card.ActionOpen)
	}

	r.drawConfetti(c, v, box, now)
}

// drawConfetti draws the pieces rising from the lid, from the box middle up to the screen top
func (r *Renderer) drawConfetti(c *Canvas, v *card.GiftBoxView, box Rect, now time.Time) {
	pieces, start := v.Confetti()
	if len(pieces) == 0 {
		return
	}
	p := r.palette
	colors := []colorful.Color{p.Heart, p.Sparkle, p.Particle, p.Ink}
	span := float64(box.Y + box.H/2)
	elapsed := now.Sub(start)
	for i, piece := range pieces {
		x, y, ok := piece.Rise(elapsed)
		if !ok {
			continue
		}
		sx := box.X + int(x*float64(box.W))
		sy := int(y * span)
		style := tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Cell(colors[i%len(colors)]))
		c.Put(sx, sy, piece.Glyph, style)
	}
}

func (r *Renderer) drawGreeting(c *Canvas, s *card.Session, v *card.GreetingView, now time.Time) {
	t := fadeIn(v.MountedAt(), now, constants.FadeInDuration)
	area := c.Bounds().Center(constants.GreetingWidth, constants.GreetingHeight+buttonRows)
	panel := Rect{X: area.X, Y: area.Y, W: area.W, H: area.H - buttonRows}

	style := r.panelStyle(t)
	c.Fill(panel, ' ', style)
	c.Frame(panel, style)

	inner := panel.Inset(constants.PanelPaddingX+1, constants.PanelPaddingY+1)
	var block []string
	block = append(block, Wrap(v.Greeting.Lead, inner.W)...)
	block = append(block, "")
	emphasisAt := len(block)
	block = append(block, Wrap(v.Greeting.Emphasis, inner.W)...)
	emphasisEnd := len(block)
	block = append(block, "", "", "")
	dividerAt := len(block) - 2
	block = append(block, Wrap(v.Greeting.Footer, inner.W)...)

	y := inner.Y + max(0, (inner.H-len(block))/2)
	for i, line := range block {
		if y+i >= inner.Y+inner.H {
			break
		}
		ls := style
		if i >= emphasisAt && i < emphasisEnd {
			ls = ls.Bold(true)
		}
		if i == dividerAt {
			line = strings.Repeat("━", 12)
		}
		c.CenterText(inner, y+i, line, ls)
	}

	r.button(c, s, area, panel.Y+panel.H+1, s.Content().Labels.Continue, card.ActionContinue)
}

func (r *Renderer) drawLetter(c *Canvas, s *card.Session, v *card.LetterView, now time.Time) {
	b := c.Bounds()
	w := min(constants.LetterWidth, b.W-4)
	textW := w - 2*constants.PanelPaddingX - 2

	// Size for the whole letter so the panel does not grow while typing
	needed := len(Wrap(s.Content().Letter, textW)) + 2*constants.PanelPaddingY + 2
	h := min(needed, b.H-buttonRows-2)
	area := b.Center(w, h+buttonRows)
	panel := Rect{X: area.X, Y: area.Y, W: w, H: h}

	style := r.panelStyle(1)
	c.Fill(panel, ' ', style)
	c.Frame(panel, style)

	inner := panel.Inset(constants.PanelPaddingX+1, constants.PanelPaddingY+1)
	lines := Wrap(v.Revealed(), textW)
	if len(lines) > inner.H {
		lines = lines[len(lines)-inner.H:]
	}
	endX, endY := inner.X, inner.Y
	for i, line := range lines {
		endX = c.Text(inner.X, inner.Y+i, line, style)
		endY = inner.Y + i
	}

	if !v.Complete() && (now.Sub(v.MountedAt())/constants.CursorBlinkInterval)%2 == 0 {
		c.Put(endX, endY, constants.GlyphCaret, style.Bold(true))
	}

	r.button(c, s, area, panel.Y+panel.H+1, s.Content().Labels.Memories, card.ActionContinue)
}

func (r *Renderer) drawCarousel(c *Canvas, s *card.Session, v *card.CarouselView, now time.Time) {
	b := c.Bounds()
	w := min(constants.CarouselWidth, b.W-4)
	photoH := max(4, min(constants.PhotoHeight, b.H-12))
	// frame + padding + title + gap + photo + gap + caption + dots
	panelH := 2 + 2*constants.PanelPaddingY + 2 + photoH + 1 + 1 + 1
	area := b.Center(w, panelH+buttonRows)
	panel := Rect{X: area.X, Y: area.Y, W: w, H: min(panelH, area.H-buttonRows)}

	style := r.panelStyle(1)
	c.Fill(panel, ' ', style)
	c.Frame(panel, style)

	inner := panel.Inset(constants.PanelPaddingX, constants.PanelPaddingY+1)
	y := inner.Y
	c.CenterText(inner, y, v.Title, style.Bold(true))
	y += 2

	photo := Rect{X: inner.X + 3, Y: y, W: inner.W - 6, H: photoH}
	idx := s.Carousel().Index()
	r.drawPhoto(c, photo, idx, fadeIn(v.SlideChangedAt(), now, constants.FadeInDuration/2))

	mid := photo.Y + photo.H/2
	arrow := tcell.StyleDefault.Background(Cell(Lighten(r.palette.Card, 0.4))).Foreground(Cell(r.palette.Ink)).Bold(true)
	if s.Available(card.ActionPrevPhoto) {
		left := Rect{X: photo.X - 3, Y: mid, W: 3, H: 1}
		c.Text(left.X, left.Y, " "+string(constants.GlyphArrowLeft)+" ", arrow)
		r.addHit(Rect{X: left.X, Y: photo.Y, W: left.W, H: photo.H}, card.ActionPrevPhoto)
	}
	if s.Available(card.ActionNextPhoto) {
		right := Rect{X: photo.X + photo.W, Y: mid, W: 3, H: 1}
		c.Text(right.X, right.Y, " "+string(constants.GlyphArrowRight)+" ", arrow)
		r.addHit(Rect{X: right.X, Y: photo.Y, W: right.W, H: photo.H}, card.ActionNextPhoto)
	}
	y += photoH + 1

	c.CenterText(inner, y, v.Current().Caption, style)
	y++

	var dots strings.Builder
	for i := range v.Photos {
		if i > 0 {
			dots.WriteByte(' ')
		}
		if i == idx {
			dots.WriteRune(constants.GlyphDotActive)
		} else {
			dots.WriteRune(constants.GlyphDotInactive)
		}
	}
	c.CenterText(inner, y, dots.String(), style)

	r.button(c, s, area, panel.Y+panel.H+1, s.Content().Labels.Bless, card.ActionContinue)
}

// drawPhoto paints photo idx as half-block cells, faded in from the card colour
func (r *Renderer) drawPhoto(c *Canvas, rect Rect, idx int, fade float64) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	var pic *content.Picture
	if r.gallery != nil {
		pic = r.gallery.Picture(idx, rect.W, rect.H)
	}
	if pic == nil {
		shade := tcell.StyleDefault.Background(Cell(Lighten(r.palette.Card, 0.2))).Foreground(Cell(r.palette.Ink))
		c.Fill(rect, ' ', shade)
		c.CenterText(rect, rect.Y+rect.H/2, "· · ·", shade)
		return
	}

	for row := 0; row < rect.H; row++ {
		for col := 0; col < rect.W; col++ {
			top := rgba(pic.At(col, row*2))
			bot := rgba(pic.At(col, row*2+1))
			style := tcell.StyleDefault.
				Foreground(Fade(r.palette.Card, top, fade)).
				Background(Fade(r.palette.Card, bot, fade))
			c.Put(rect.X+col, rect.Y+row, '▀', style)
		}
	}
}

func rgba(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (r *Renderer) drawBlessing(c *Canvas, s *card.Session, v *card.BlessingView, now time.Time) {
	b := c.Bounds()
	p := r.palette
	elapsed := now.Sub(v.MountedAt())

	dot := tcell.StyleDefault.Background(Cell(p.Background)).Foreground(Fade(p.Background, p.Particle, 0.85))
	for _, part := range v.Particles() {
		x, y, ok := part.Bounce(elapsed)
		if !ok {
			continue
		}
		c.Put(int(x*float64(b.W-1)), int(y*float64(b.H-1)), part.Glyph, dot)
	}

	w := min(constants.BlessingWidth, b.W-4)
	textW := w - 2*constants.PanelPaddingX - 2
	heading := Wrap(v.Blessing.Heading, textW)
	var body []string
	for _, line := range v.Blessing.Lines {
		body = append(body, Wrap(line, textW)...)
	}
	// frame + padding + star + gap + heading + gap + body + gap + heart
	panelH := 2 + 2*constants.PanelPaddingY + 2 + len(heading) + 1 + len(body) + 2
	area := b.Center(w, panelH+buttonRows)
	panel := Rect{X: area.X, Y: area.Y, W: w, H: min(panelH, area.H-buttonRows)}

	t := fadeIn(v.MountedAt(), now, constants.FadeInDuration)
	style := r.panelStyle(t)
	c.Fill(panel, ' ', style)
	c.Frame(panel, style)

	inner := panel.Inset(constants.PanelPaddingX+1, constants.PanelPaddingY+1)
	y := inner.Y
	star := tcell.StyleDefault.Background(Cell(p.Card)).Foreground(Fade(p.Card, p.Sparkle, t))
	c.CenterText(inner, y, string(constants.GlyphStar), star)
	y += 2
	for _, line := range heading {
		c.CenterText(inner, y, line, style.Bold(true))
		y++
	}
	y++
	for _, line := range body {
		if y >= inner.Y+inner.H-1 {
			break
		}
		c.CenterText(inner, y, line, style)
		y++
	}
	heart := tcell.StyleDefault.Background(Cell(p.Card)).Foreground(Fade(p.Card, p.Heart, t))
	c.CenterText(inner, inner.Y+inner.H-1, string(constants.GlyphHeart), heart)

	label := string(constants.GlyphRestart) + " " + s.Content().Labels.Restart
	r.button(c, s, area, panel.Y+panel.H+1, label, card.ActionRestart)
}
