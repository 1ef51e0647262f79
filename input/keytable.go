package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/giftcard/card"
)

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent IntentType
	Action card.Action
}

// Unbound reports whether the entry is the "none" sentinel used to remove a binding
func (e KeyEntry) Unbound() bool {
	return e.Intent == IntentNone
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable bindings, Space included
	Runes map[rune]KeyEntry
}

func action(a card.Action) KeyEntry {
	return KeyEntry{Intent: IntentAction, Action: a}
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyCtrlQ:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyEnter:  action(card.ActionContinue),
			tcell.KeyLeft:   action(card.ActionPrevPhoto),
			tcell.KeyRight:  action(card.ActionNextPhoto),
		},

		Runes: map[rune]KeyEntry{
			' ': action(card.ActionContinue),
			'h': action(card.ActionPrevPhoto),
			'l': action(card.ActionNextPhoto),
			'm': action(card.ActionToggleMusic),
			'r': action(card.ActionRestart),
			'q': {Intent: IntentQuit},
			'?': {Intent: IntentToggleDiagnostics},
		},
	}
}

// Lookup resolves a key event; modified runes other than Shift are not bound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return KeyEntry{}, false
		}
		e, ok := kt.Runes[ev.Rune()]
		return e, ok
	}
	e, ok := kt.SpecialKeys[ev.Key()]
	return e, ok
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: cloneMap(kt.SpecialKeys),
		Runes:       cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]KeyEntry) map[K]KeyEntry {
	c := make(map[K]KeyEntry, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
