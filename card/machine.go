package card

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/engine"
	"github.com/lixenwraith/giftcard/engine/status"
)

// Variant selects the card choreography
type Variant int

const (
	// VariantEnhanced defers commits behind a sparkle window and opens the gift with an animation
	VariantEnhanced Variant = iota
	// VariantBaseline commits every advance immediately
	VariantBaseline
)

// String returns the variant name as used in configuration
func (v Variant) String() string {
	switch v {
	case VariantEnhanced:
		return "enhanced"
	case VariantBaseline:
		return "baseline"
	default:
		return "unknown"
	}
}

// ParseVariant parses a configuration value
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "enhanced":
		return VariantEnhanced, nil
	case "baseline", "basic":
		return VariantBaseline, nil
	default:
		return VariantEnhanced, fmt.Errorf("unknown variant %q (use enhanced or baseline)", s)
	}
}

// MachineConfig holds the choreography durations
type MachineConfig struct {
	Variant          Variant
	TransitionWindow time.Duration
	OpeningDuration  time.Duration
}

// DefaultMachineConfig returns the durations of the given variant
func DefaultMachineConfig(v Variant) MachineConfig {
	if v == VariantBaseline {
		return MachineConfig{Variant: VariantBaseline}
	}
	return MachineConfig{
		Variant:          VariantEnhanced,
		TransitionWindow: constants.TransitionWindow,
		OpeningDuration:  constants.OpeningDuration,
	}
}

// Hooks are notified of machine changes; every field is optional
type Hooks struct {
	// OnEnter fires whenever the view for to must be (re)mounted: commits and restarts
	OnEnter func(from, to Layer)
	// OnTransition fires when a decoration window opens
	OnTransition func(target Layer)
	// OnOpen fires when the gift-box opening animation starts
	OnOpen func()
}

// AdvanceGuard reports whether the card may leave layer from
type AdvanceGuard func(from Layer) bool

// TransitionState describes an in-flight deferred advance
type TransitionState struct {
	Target  Layer
	Active  bool
	Started time.Time
}

// Machine is the layer state machine
// It owns the current layer and the deferred-commit timers; all methods must be called
// from the scheduler's goroutine
type Machine struct {
	sched *engine.Scheduler
	cfg   MachineConfig
	hooks Hooks
	guard AdvanceGuard

	layer      Layer
	generation uint64
	opened     bool

	transition     TransitionState
	transitionTask *engine.Task
	openingTask    *engine.Task
	openingStarted time.Time

	statCommits  *atomic.Int64
	statStale    *atomic.Int64
	statIgnored  *atomic.Int64
	statRestarts *atomic.Int64
}

// NewMachine creates a machine positioned on the gift box
func NewMachine(sched *engine.Scheduler, cfg MachineConfig, reg *status.Registry) *Machine {
	return &Machine{
		sched:        sched,
		cfg:          cfg,
		layer:        LayerGiftBox,
		statCommits:  reg.Counter("machine.commits"),
		statStale:    reg.Counter("machine.stale"),
		statIgnored:  reg.Counter("machine.ignored"),
		statRestarts: reg.Counter("machine.restarts"),
	}
}

// SetHooks replaces the change listeners
func (m *Machine) SetHooks(h Hooks) {
	m.hooks = h
}

// SetGuard installs the advance precondition
func (m *Machine) SetGuard(g AdvanceGuard) {
	m.guard = g
}

// Config returns the choreography durations
func (m *Machine) Config() MachineConfig {
	return m.cfg
}

// Current returns the committed layer
func (m *Machine) Current() Layer {
	return m.layer
}

// Generation changes on every commit and effective restart
func (m *Machine) Generation() uint64 {
	return m.generation
}

// DecorationActive is true iff a transition is in flight
func (m *Machine) DecorationActive() bool {
	return m.transition.Active
}

// Transition returns the in-flight transition, if any
func (m *Machine) Transition() TransitionState {
	return m.transition
}

// TransitionProgress returns how far the decoration window has run, in [0,1]
func (m *Machine) TransitionProgress(now time.Time) float64 {
	if !m.transition.Active {
		return 0
	}
	return progress(m.transition.Started, now, m.cfg.TransitionWindow)
}

// Opened reports whether the gift has been opened in this pass
func (m *Machine) Opened() bool {
	return m.opened
}

// Opening reports whether the opening animation is running
func (m *Machine) Opening() bool {
	return m.openingTask.Active()
}

// OpeningProgress returns how far the opening animation has run, in [0,1]
func (m *Machine) OpeningProgress(now time.Time) float64 {
	if !m.opened {
		return 0
	}
	if !m.openingTask.Active() {
		return 1
	}
	return progress(m.openingStarted, now, m.cfg.OpeningDuration)
}

func (m *Machine) deferred() bool {
	return m.cfg.Variant == VariantEnhanced
}

// CanAdvance reports whether Advance would start or commit a transition now
func (m *Machine) CanAdvance() bool {
	if m.layer.Terminal() || m.transition.Active {
		return false
	}
	return m.guard == nil || m.guard(m.layer)
}

// Advance requests the next layer
// At the last layer, during a pending transition or when the guard refuses, it is a no-op
// returning false. In the enhanced variant the commit is deferred by the transition window.
func (m *Machine) Advance() bool {
	if !m.CanAdvance() {
		m.statIgnored.Add(1)
		return false
	}

	target := m.layer.Next()
	if !m.deferred() || m.cfg.TransitionWindow <= 0 {
		m.commit(target)
		return true
	}

	gen := m.generation
	m.transition = TransitionState{Target: target, Active: true, Started: m.sched.Now()}
	m.transitionTask = m.sched.After(m.cfg.TransitionWindow, func() {
		m.finishTransition(gen, target)
	})

	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(target)
	}
	return true
}

// finishTransition commits a deferred advance unless the machine moved on meanwhile
func (m *Machine) finishTransition(gen uint64, target Layer) {
	if gen != m.generation || !m.transition.Active || m.transition.Target != target {
		m.statStale.Add(1)
		return
	}
	m.transition = TransitionState{}
	m.transitionTask = nil
	m.commit(target)
}

func (m *Machine) commit(to Layer) {
	from := m.layer
	m.layer = to
	m.generation++
	m.statCommits.Add(1)

	if m.hooks.OnEnter != nil {
		m.hooks.OnEnter(from, to)
	}
}

// OpenEntry opens the gift box and then advances
// Only valid on the gift box; repeated calls while the opening is pending are ignored
func (m *Machine) OpenEntry() bool {
	if m.layer != LayerGiftBox || m.opened {
		m.statIgnored.Add(1)
		return false
	}
	m.opened = true

	if !m.deferred() || m.cfg.OpeningDuration <= 0 {
		if !m.Advance() {
			m.opened = false
			return false
		}
		return true
	}

	gen := m.generation
	m.openingStarted = m.sched.Now()
	m.openingTask = m.sched.After(m.cfg.OpeningDuration, func() {
		if gen != m.generation {
			m.statStale.Add(1)
			return
		}
		m.openingTask = nil
		if !m.Advance() && !m.transition.Active {
			m.opened = false
		}
	})

	if m.hooks.OnOpen != nil {
		m.hooks.OnOpen()
	}
	return true
}

// Restart returns to the gift box from any state
// Pending transition and opening timers are cancelled and the opened guard is cleared.
// Returns false when the machine was already reset.
func (m *Machine) Restart() bool {
	pending := m.transition.Active || m.openingTask.Active()
	if m.layer == LayerGiftBox && !pending && !m.opened {
		return false
	}

	m.transitionTask.Cancel()
	m.openingTask.Cancel()
	m.transitionTask = nil
	m.openingTask = nil
	m.transition = TransitionState{}
	m.opened = false

	from := m.layer
	m.layer = LayerGiftBox
	m.generation++
	m.statRestarts.Add(1)

	if m.hooks.OnEnter != nil {
		m.hooks.OnEnter(from, LayerGiftBox)
	}
	return true
}

// progress maps elapsed time since start onto [0,1]
func progress(start, now time.Time, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
