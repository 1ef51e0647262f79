package input

import "github.com/lixenwraith/giftcard/card"

// IntentType discriminates what an input event asks of the event loop
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit              // q, Esc, Ctrl+C
	IntentToggleDiagnostics // ?
	IntentResize            // Terminal resize event

	// IntentAction carries a card action for the session
	IntentAction
)

var intentNames = [...]string{"none", "quit", "diagnostics", "resize", "action"}

func (t IntentType) String() string {
	if int(t) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[t]
}

// Intent is one decoded input event
type Intent struct {
	Type   IntentType
	Action card.Action
}

// None is the empty intent for ignored events
var None = Intent{}

// ActionIntent wraps a card action
func ActionIntent(a card.Action) Intent {
	return Intent{Type: IntentAction, Action: a}
}
