package card

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/giftcard/engine"
	"github.com/lixenwraith/giftcard/engine/status"
)

// Typewriter reveals a fixed text one rune per tick
// An instance is single-use: it starts from zero when mounted and is discarded on unmount
type Typewriter struct {
	source   []rune
	interval time.Duration

	revealed int
	complete bool
	task     *engine.Task

	onTick     func(revealed int)
	onComplete func()

	statTicks *atomic.Int64
}

// NewTypewriter creates a stopped typewriter over text
func NewTypewriter(text string, interval time.Duration, reg *status.Registry) (*Typewriter, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Typewriter{
		source:    []rune(text),
		interval:  interval,
		statTicks: reg.Counter("typewriter.ticks"),
	}, nil
}

// OnTick registers a listener called after every reveal step
func (tw *Typewriter) OnTick(fn func(revealed int)) {
	tw.onTick = fn
}

// OnComplete registers a listener called once, on the tick that reveals the last rune
func (tw *Typewriter) OnComplete(fn func()) {
	tw.onComplete = fn
}

// Start begins ticking inside scope; the scope's cancellation stops the reveal
// Calling Start on a running or finished typewriter does nothing
func (tw *Typewriter) Start(scope *engine.Scope) {
	if tw.task.Active() || tw.complete {
		return
	}
	tw.task = scope.Every(tw.interval, tw.tick)
}

// Stop cancels the pending ticks; the revealed prefix is frozen
func (tw *Typewriter) Stop() {
	tw.task.Cancel()
}

func (tw *Typewriter) tick() {
	if tw.complete {
		tw.task.Cancel()
		return
	}

	tw.revealed++
	tw.statTicks.Add(1)
	if tw.revealed >= len(tw.source) {
		tw.revealed = len(tw.source)
		tw.complete = true
		tw.task.Cancel()
	}

	if tw.onTick != nil {
		tw.onTick(tw.revealed)
	}
	if tw.complete && tw.onComplete != nil {
		tw.onComplete()
	}
}

// Source returns the full text
func (tw *Typewriter) Source() string {
	return string(tw.source)
}

// Len returns the source length in runes
func (tw *Typewriter) Len() int {
	return len(tw.source)
}

// Revealed returns the visible prefix
func (tw *Typewriter) Revealed() string {
	return string(tw.source[:tw.revealed])
}

// RevealedLength returns the number of visible runes
func (tw *Typewriter) RevealedLength() int {
	return tw.revealed
}

// Complete reports whether the whole text is visible
func (tw *Typewriter) Complete() bool {
	return tw.complete
}

// Running reports whether ticks are still scheduled
func (tw *Typewriter) Running() bool {
	return tw.task.Active()
}

// Interval returns the reveal cadence
func (tw *Typewriter) Interval() time.Duration {
	return tw.interval
}
