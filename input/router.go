package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/giftcard/card"
)

// HitTester resolves a screen cell to the clickable action drawn there
type HitTester interface {
	HitTest(x, y int) (card.Action, bool)
}

// Router decodes tcell events into intents
// Mouse presses fire on the button-down edge only; tcell repeats the button mask
// on every motion event while it is held
type Router struct {
	keys    *KeyTable
	hits    HitTester
	buttons tcell.ButtonMask
}

// NewRouter creates a router; a nil table uses the defaults
func NewRouter(keys *KeyTable, hits HitTester) *Router {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Router{keys: keys, hits: hits}
}

// Handle returns the intent for ev, None when the event means nothing
func (r *Router) Handle(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		entry, ok := r.keys.Lookup(ev)
		if !ok {
			return None
		}
		return Intent{Type: entry.Intent, Action: entry.Action}

	case *tcell.EventMouse:
		return r.handleMouse(ev)

	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return None
}

func (r *Router) handleMouse(ev *tcell.EventMouse) Intent {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0
	r.buttons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		return ActionIntent(card.ActionPrevPhoto)
	case buttons&tcell.WheelDown != 0:
		return ActionIntent(card.ActionNextPhoto)
	case !pressed || r.hits == nil:
		return None
	}

	x, y := ev.Position()
	if a, ok := r.hits.HitTest(x, y); ok {
		return ActionIntent(a)
	}
	return None
}
