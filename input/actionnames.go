package input

import "github.com/lixenwraith/giftcard/card"

// actionRegistry maps the names used in the keys section of the config file to entries
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"quit":        {Intent: IntentQuit},
	"diagnostics": {Intent: IntentToggleDiagnostics},

	"open":         action(card.ActionOpen),
	"continue":     action(card.ActionContinue),
	"prev_photo":   action(card.ActionPrevPhoto),
	"next_photo":   action(card.ActionNextPhoto),
	"toggle_music": action(card.ActionToggleMusic),
	"restart":      action(card.ActionRestart),
}

// ActionEntry returns the entry registered under name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}
