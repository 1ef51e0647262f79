package card

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
	"github.com/lixenwraith/giftcard/engine"
	"github.com/lixenwraith/giftcard/engine/status"
)

// Action is a user intent delivered to the session
type Action int

const (
	ActionNone Action = iota
	// ActionOpen opens the gift box
	ActionOpen
	// ActionContinue is the primary button of the current layer
	ActionContinue
	ActionPrevPhoto
	ActionNextPhoto
	ActionToggleMusic
	ActionRestart
)

var actionNames = [...]string{"none", "open", "continue", "prev_photo", "next_photo", "toggle_music", "restart"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// EffectPlayer plays short cues over the music
type EffectPlayer interface {
	Chime()
	Sparkle()
}

// Options configures a session; zero fields fall back to defaults
type Options struct {
	Machine            MachineConfig
	TypewriterInterval time.Duration
	Media              MediaHandle
	Effects            EffectPlayer
	Logger             *log.Logger
	Registry           *status.Registry
	Rand               *rand.Rand
}

// Session is one run of the card: content, layer machine, current view and music
// It is not safe for concurrent use; the event loop owns it
type Session struct {
	id      string
	content *content.Content
	sched   *engine.Scheduler
	machine *Machine
	audio   *AudioToggle
	effects EffectPlayer

	carousel   *Carousel
	view       View
	twInterval time.Duration

	sparkles   []Particle
	sparklesAt time.Time

	logger *log.Logger
	rng    *rand.Rand
	reg    *status.Registry
	closed bool

	statActions *atomic.Int64
}

// NewSession builds a session positioned on the mounted gift box
func NewSession(id string, c *content.Content, sched *engine.Scheduler, opts Options) (*Session, error) {
	if c == nil {
		c = content.Default()
	}
	carousel, err := NewCarousel(len(c.Photos))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(sched.Now().UnixNano()), 0x5eed))
	}
	interval := opts.TypewriterInterval
	if interval <= 0 {
		interval = constants.TypewriterInterval
		if opts.Machine.Variant == VariantBaseline {
			interval = constants.BaselineTypewriterInterval
		}
	}

	s := &Session{
		id:          id,
		content:     c,
		sched:       sched,
		machine:     NewMachine(sched, opts.Machine, opts.Registry),
		audio:       NewAudioToggle(opts.Media, logger, opts.Registry),
		effects:     opts.Effects,
		carousel:    carousel,
		twInterval:  interval,
		logger:      logger,
		rng:         rng,
		reg:         opts.Registry,
		statActions: opts.Registry.Counter("session.actions"),
	}

	s.machine.SetGuard(s.mayLeave)
	s.machine.SetHooks(Hooks{
		OnEnter:      s.onEnter,
		OnTransition: s.onTransition,
		OnOpen:       s.onOpen,
	})
	s.mount(LayerGiftBox)

	logger.Info("session started", "variant", opts.Machine.Variant, "photos", carousel.Len(), "typewriter", interval)
	return s, nil
}

// mayLeave gates advancing out of the letter and carousel layers
func (s *Session) mayLeave(from Layer) bool {
	switch from {
	case LayerLetter:
		lv, ok := s.view.(*LetterView)
		return ok && lv.Complete()
	case LayerCarousel:
		return s.carousel.AtLastItem()
	default:
		return true
	}
}

func (s *Session) onEnter(from, to Layer) {
	s.mount(to)
	s.logger.Info("layer entered", "from", from, "to", to, "generation", s.machine.Generation())
	if to == LayerBlessing && s.effects != nil && s.audio.Playing() {
		s.effects.Chime()
	}
}

func (s *Session) onTransition(target Layer) {
	s.sparkles = EmitSparkles(s.rng, constants.SparkleCount, s.machine.Config().TransitionWindow)
	s.sparklesAt = s.sched.Now()
	s.logger.Debug("transition started", "target", target)
	if s.effects != nil && s.audio.Playing() {
		s.effects.Sparkle()
	}
}

func (s *Session) onOpen() {
	if gv, ok := s.view.(*GiftBoxView); ok {
		gv.Open(s.rng, s.machine.Config().OpeningDuration)
	}
	s.logger.Debug("gift opening")
}

// mount replaces the current view with a fresh one for layer
func (s *Session) mount(layer Layer) {
	if s.view != nil {
		s.view.Unmount()
	}
	s.view = s.newView(layer)
	s.view.Mount(s.sched.NewScope())
}

func (s *Session) newView(layer Layer) View {
	c := s.content
	switch layer {
	case LayerGreeting:
		return &GreetingView{Greeting: c.Greeting}
	case LayerLetter:
		lv := NewLetterView(c.Letter, s.twInterval, s.reg)
		lv.OnComplete(func() {
			s.logger.Debug("letter revealed", "runes", c.LetterRunes())
		})
		return lv
	case LayerCarousel:
		return &CarouselView{Title: c.Memories, Photos: c.Photos, Carousel: s.carousel}
	case LayerBlessing:
		return &BlessingView{Blessing: c.Blessing, rng: s.rng}
	default:
		return &GiftBoxView{Title: c.TitleLines(), Hint: c.Hint}
	}
}

// Dispatch applies action and reports whether it changed anything
func (s *Session) Dispatch(a Action) bool {
	if s.closed {
		return false
	}
	s.statActions.Add(1)

	var changed bool
	switch a {
	case ActionOpen:
		changed = s.machine.OpenEntry()
	case ActionContinue:
		if s.machine.Current() == LayerGiftBox {
			changed = s.machine.OpenEntry()
		} else {
			changed = s.machine.Advance()
		}
	case ActionPrevPhoto:
		changed = s.movePhoto(s.carousel.Prev)
	case ActionNextPhoto:
		changed = s.movePhoto(s.carousel.Next)
	case ActionToggleMusic:
		before := s.audio.Playing()
		changed = s.audio.Toggle() != before
	case ActionRestart:
		changed = s.Restart()
	}

	s.logger.Debug("action", "action", a, "changed", changed, "layer", s.machine.Current())
	return changed
}

func (s *Session) movePhoto(fn func() int) bool {
	cv, ok := s.view.(*CarouselView)
	if !ok || s.machine.DecorationActive() {
		return false
	}
	return cv.move(fn)
}

// Available reports whether the control for action is currently offered
func (s *Session) Available(a Action) bool {
	if s.closed {
		return false
	}
	layer := s.machine.Current()
	switch a {
	case ActionOpen:
		return layer == LayerGiftBox && !s.machine.Opened()
	case ActionContinue:
		if layer == LayerGiftBox {
			return !s.machine.Opened()
		}
		return s.machine.CanAdvance()
	case ActionPrevPhoto, ActionNextPhoto:
		return layer == LayerCarousel && s.carousel.Len() > 1
	case ActionToggleMusic:
		return true
	case ActionRestart:
		return layer == LayerBlessing
	default:
		return false
	}
}

// Restart returns the card to the gift box, resets the carousel and rewinds the music
// The music keeps its play/pause state. Restarting an already reset card changes nothing.
func (s *Session) Restart() bool {
	if s.closed {
		return false
	}
	if !s.machine.Restart() {
		return false
	}
	s.carousel.Reset()
	s.audio.Rewind()
	s.sparkles = nil
	s.logger.Info("session restarted", "generation", s.machine.Generation())
	return true
}

// Reload swaps in new content and starts over from the gift box
func (s *Session) Reload(c *content.Content) error {
	if s.closed {
		return nil
	}
	if c == nil {
		return ErrNoContent
	}
	carousel, err := NewCarousel(len(c.Photos))
	if err != nil {
		return err
	}
	s.content = c
	s.carousel = carousel
	if !s.machine.Restart() {
		s.mount(LayerGiftBox)
	}
	s.audio.Rewind()
	s.sparkles = nil
	s.logger.Info("content reloaded", "source", c.Source, "photos", carousel.Len())
	return nil
}

// Update runs the timers that are due and returns how many fired
func (s *Session) Update() int {
	if s.closed {
		return 0
	}
	return s.sched.Update()
}

// Close unmounts the view and cancels every pending timer
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.view != nil {
		s.view.Unmount()
	}
	s.sched.CancelAll()
	s.logger.Info("session closed", "id", s.id)
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Content returns the script being played
func (s *Session) Content() *content.Content { return s.content }

// Layer returns the committed layer
func (s *Session) Layer() Layer { return s.machine.Current() }

// View returns the mounted view
func (s *Session) View() View { return s.view }

// Machine exposes the layer machine for rendering
func (s *Session) Machine() *Machine { return s.machine }

// Carousel returns the photo navigation state
func (s *Session) Carousel() *Carousel { return s.carousel }

// Audio returns the music toggle
func (s *Session) Audio() *AudioToggle { return s.audio }

// Now returns the scheduler's clock
func (s *Session) Now() time.Time { return s.sched.Now() }

// Closed reports whether Close was called
func (s *Session) Closed() bool { return s.closed }

// Sparkles returns the burst of the running transition and its start, nil when idle
func (s *Session) Sparkles() ([]Particle, time.Time) {
	if !s.machine.DecorationActive() {
		return nil, time.Time{}
	}
	return s.sparkles, s.sparklesAt
}
