package card

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
	"github.com/lixenwraith/giftcard/engine"
	"github.com/lixenwraith/giftcard/engine/status"
)

// View is the mounted presentation of one layer
// A view is created for each mount and discarded on unmount; all of its timers live in
// the scope passed to Mount
type View interface {
	Layer() Layer
	Mount(scope *engine.Scope)
	Unmount()
}

// mount tracks the scope and mount instant shared by every view
type mount struct {
	scope *engine.Scope
	since time.Time
}

func (m *mount) attach(scope *engine.Scope) {
	m.scope = scope
	m.since = scope.Now()
}

func (m *mount) detach() {
	if m.scope != nil {
		m.scope.Cancel()
	}
}

// MountedAt returns when the view was mounted
func (m *mount) MountedAt() time.Time {
	return m.since
}

// Mounted reports whether the view is live
func (m *mount) Mounted() bool {
	return m.scope != nil && !m.scope.Closed()
}

// GiftBoxView is the wrapped present with its pulsing hint
type GiftBoxView struct {
	mount
	Title []string
	Hint  string

	confetti []Particle
	openedAt time.Time
}

func (v *GiftBoxView) Layer() Layer              { return LayerGiftBox }
func (v *GiftBoxView) Mount(scope *engine.Scope) { v.attach(scope) }
func (v *GiftBoxView) Unmount()                  { v.detach() }

// Open releases the confetti burst of the opening animation
func (v *GiftBoxView) Open(rng *rand.Rand, span time.Duration) {
	v.openedAt = v.scope.Now()
	v.confetti = EmitConfetti(rng, constants.ConfettiCount, span)
}

// Confetti returns the burst and the instant it was released; nil before Open
func (v *GiftBoxView) Confetti() ([]Particle, time.Time) {
	return v.confetti, v.openedAt
}

// GreetingView fades in the opening card
type GreetingView struct {
	mount
	Greeting content.Greeting
}

func (v *GreetingView) Layer() Layer              { return LayerGreeting }
func (v *GreetingView) Mount(scope *engine.Scope) { v.attach(scope) }
func (v *GreetingView) Unmount()                  { v.detach() }

// LetterView types out the letter
// Each mount builds a fresh typewriter, so a remounted letter starts from the first rune
type LetterView struct {
	mount
	text     string
	interval time.Duration
	reg      *status.Registry

	tw         *Typewriter
	onComplete func()
}

// NewLetterView prepares a letter view; the typewriter is created on Mount
func NewLetterView(text string, interval time.Duration, reg *status.Registry) *LetterView {
	return &LetterView{text: text, interval: interval, reg: reg}
}

// OnComplete registers a listener for the end of the reveal
func (v *LetterView) OnComplete(fn func()) {
	v.onComplete = fn
}

func (v *LetterView) Layer() Layer { return LayerLetter }

func (v *LetterView) Mount(scope *engine.Scope) {
	v.attach(scope)
	tw, err := NewTypewriter(v.text, v.interval, v.reg)
	if err != nil {
		// Content validation rejects an empty letter; an unusable interval shows it whole
		v.tw = nil
		return
	}
	tw.OnComplete(func() {
		if v.onComplete != nil {
			v.onComplete()
		}
	})
	v.tw = tw
	tw.Start(scope)
}

func (v *LetterView) Unmount() {
	if v.tw != nil {
		v.tw.Stop()
	}
	v.detach()
}

// Revealed returns the visible prefix of the letter
func (v *LetterView) Revealed() string {
	if v.tw == nil {
		return v.text
	}
	return v.tw.Revealed()
}

// Complete reports whether the whole letter is visible
func (v *LetterView) Complete() bool {
	return v.tw == nil || v.tw.Complete()
}

// Typewriter exposes the reveal of the current mount, nil before Mount
func (v *LetterView) Typewriter() *Typewriter {
	return v.tw
}

// CarouselView shows one photo at a time
// The carousel index outlives the view; only Restart resets it
type CarouselView struct {
	mount
	Title    string
	Photos   []content.Photo
	Carousel *Carousel

	slideAt time.Time
}

func (v *CarouselView) Layer() Layer { return LayerCarousel }

func (v *CarouselView) Mount(scope *engine.Scope) {
	v.attach(scope)
	v.slideAt = v.since
}

func (v *CarouselView) Unmount() { v.detach() }

// Current returns the photo on display
func (v *CarouselView) Current() content.Photo {
	return v.Photos[v.Carousel.Index()]
}

// SlideChangedAt returns when the current photo was brought up, for its fade
func (v *CarouselView) SlideChangedAt() time.Time {
	return v.slideAt
}

func (v *CarouselView) move(fn func() int) bool {
	before := v.Carousel.Index()
	if fn() == before {
		return false
	}
	v.slideAt = v.scope.Now()
	return true
}

// BlessingView is the final card with floating particles
type BlessingView struct {
	mount
	Blessing content.Blessing

	rng       *rand.Rand
	particles []Particle
}

func (v *BlessingView) Layer() Layer { return LayerBlessing }

func (v *BlessingView) Mount(scope *engine.Scope) {
	v.attach(scope)
	v.particles = EmitBlessing(v.rng, constants.ParticleCount)
}

func (v *BlessingView) Unmount() { v.detach() }

// Particles returns the floating particles emitted on mount
func (v *BlessingView) Particles() []Particle {
	return v.particles
}
