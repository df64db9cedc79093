package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownKey    = errors.New("unknown key")
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyByName resolves lowercased tcell key names ("esc", "enter", "ctrl-c", "f1")
var keyByName map[string]tcell.Key

func init() {
	keyByName = make(map[string]tcell.Key, len(tcell.KeyNames)+1)
	for k, name := range tcell.KeyNames {
		keyByName[strings.ToLower(name)] = k
	}
	keyByName["escape"] = tcell.KeyEscape
}

// ParseKeyBindings converts a key name → action name table into a sparse override KeyTable
// Returns error on unknown action names or key names
func ParseKeyBindings(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		Runes: make(map[rune]Action),
		Keys:  make(map[tcell.Key]Action),
	}

	for keyStr, actionName := range bindings {
		a, ok := ActionByName(actionName)
		if !ok {
			return nil, fmt.Errorf("[keys] key %q: %q: %w", keyStr, actionName, ErrUnknownAction)
		}

		if r, ok := resolveRune(keyStr); ok {
			kt.Runes[r] = a
			continue
		}
		if k, ok := keyByName[strings.ToLower(strings.TrimSpace(keyStr))]; ok {
			kt.Keys[k] = a
			continue
		}
		return nil, fmt.Errorf("[keys] %q (expected single character, alias or key name): %w", keyStr, ErrUnknownKey)
	}

	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if result.Runes == nil {
		result.Runes = make(map[rune]Action)
	}
	if result.Keys == nil {
		result.Keys = make(map[tcell.Key]Action)
	}
	if override == nil {
		return result
	}

	for r, a := range override.Runes {
		if a == ActionNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = a
		}
	}
	for k, a := range override.Keys {
		if a == ActionNone {
			delete(result.Keys, k)
		} else {
			result.Keys[k] = a
		}
	}
	return result
}

// LoadKeyTable merges bindings over the defaults
func LoadKeyTable(bindings map[string]string) (*KeyTable, error) {
	override, err := ParseKeyBindings(bindings)
	if err != nil {
		return nil, err
	}
	return MergeKeyTable(DefaultKeyTable(), override), nil
}
