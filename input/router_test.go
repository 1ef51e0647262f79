package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/giftcard/card"
)

// fakeHits reports a single clickable cell
type fakeHits struct {
	x, y   int
	action card.Action
	calls  int
}

func (f *fakeHits) HitTest(x, y int) (card.Action, bool) {
	f.calls++
	if x == f.x && y == f.y {
		return f.action, true
	}
	return card.ActionNone, false
}

func TestRouterKeys(t *testing.T) {
	r := NewRouter(nil, nil)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionIntent(card.ActionContinue)},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionIntent(card.ActionContinue)},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionIntent(card.ActionPrevPhoto)},
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), ActionIntent(card.ActionPrevPhoto)},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionIntent(card.ActionNextPhoto)},
		{"l", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), ActionIntent(card.ActionNextPhoto)},
		{"m", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), ActionIntent(card.ActionToggleMusic)},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionIntent(card.ActionRestart)},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Intent{Type: IntentQuit}},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentQuit}},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"?", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), Intent{Type: IntentToggleDiagnostics}},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), None},
		{"alt+m", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModAlt), None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Handle(tt.ev); got != tt.want {
				t.Errorf("Handle() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRouterResize(t *testing.T) {
	r := NewRouter(nil, nil)
	if got := r.Handle(tcell.NewEventResize(100, 40)); got.Type != IntentResize {
		t.Errorf("Handle(resize) = %+v", got)
	}
}

// TestRouterMousePressEdge checks that a held button fires once
func TestRouterMousePressEdge(t *testing.T) {
	hits := &fakeHits{x: 10, y: 5, action: card.ActionOpen}
	r := NewRouter(nil, hits)

	down := tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)
	if got := r.Handle(down); got != ActionIntent(card.ActionOpen) {
		t.Fatalf("press = %+v, want open", got)
	}

	// Drag with the button still held
	held := tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)
	if got := r.Handle(held); got != None {
		t.Errorf("held = %+v, want none", got)
	}

	up := tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)
	if got := r.Handle(up); got != None {
		t.Errorf("release = %+v, want none", got)
	}

	if got := r.Handle(down); got != ActionIntent(card.ActionOpen) {
		t.Errorf("second press = %+v, want open", got)
	}
	if hits.calls != 2 {
		t.Errorf("HitTest called %d times, want 2", hits.calls)
	}
}

func TestRouterMouseMiss(t *testing.T) {
	hits := &fakeHits{x: 10, y: 5, action: card.ActionOpen}
	r := NewRouter(nil, hits)
	if got := r.Handle(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)); got != None {
		t.Errorf("miss = %+v, want none", got)
	}

	noHits := NewRouter(nil, nil)
	if got := noHits.Handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)); got != None {
		t.Errorf("no hit tester = %+v, want none", got)
	}
}

func TestRouterWheel(t *testing.T) {
	r := NewRouter(nil, nil)
	if got := r.Handle(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone)); got != ActionIntent(card.ActionPrevPhoto) {
		t.Errorf("wheel up = %+v", got)
	}
	if got := r.Handle(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)); got != ActionIntent(card.ActionNextPhoto) {
		t.Errorf("wheel down = %+v", got)
	}
}

func TestIntentTypeString(t *testing.T) {
	if IntentQuit.String() != "quit" || IntentAction.String() != "action" {
		t.Errorf("names = %s %s", IntentQuit, IntentAction)
	}
	if IntentType(99).String() != "unknown" {
		t.Errorf("IntentType(99) = %s", IntentType(99))
	}
}
