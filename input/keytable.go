package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps key presses to actions
type KeyTable struct {
	// Printable keys
	Runes map[rune]Action

	// Special keys (Ctrl+*, arrows, Esc)
	Keys map[tcell.Key]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Keys: map[tcell.Key]Action{
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyEnter:  ActionRestart,
		},
		Runes: map[rune]Action{
			'q': ActionQuit,
			' ': ActionPause,
			'p': ActionPause,
			'r': ActionRestart,
			't': ActionToggleTrace,
			'd': ActionToggleDebug,
			'f': ActionToggleFill,
			'n': ActionToggleNodes,
			'i': ActionToggleInvert,
			'h': ActionToggleHistory,
			'b': ActionToggleBounds,
			'c': ActionCycleInjection,
			's': ActionSnapshot,
		},
	}
	for i := 0; i < 9; i++ {
		kt.Runes['1'+rune(i)] = ActionLayout1 + Action(i)
	}
	return kt
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Runes: maps.Clone(kt.Runes),
		Keys:  maps.Clone(kt.Keys),
	}
}

// Lookup maps a key event to its action, ActionNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}
