package input

import (
	"fmt"
	"sort"
	"strings"
)

// actionRegistry maps canonical action names to actions
// Used by the key config loader to resolve TOML action strings
var actionRegistry map[string]Action

// actionNames is the inverse of actionRegistry
var actionNames map[Action]string

func init() {
	actionRegistry = buildActionRegistry()
	actionNames = make(map[Action]string, len(actionRegistry))
	for name, a := range actionRegistry {
		actionNames[a] = name
	}
}

func buildActionRegistry() map[string]Action {
	m := map[string]Action{
		// Unbind sentinel
		"none": ActionNone,

		"quit":    ActionQuit,
		"pause":   ActionPause,
		"restart": ActionRestart,

		"toggle_trace":   ActionToggleTrace,
		"toggle_debug":   ActionToggleDebug,
		"toggle_fill":    ActionToggleFill,
		"toggle_nodes":   ActionToggleNodes,
		"toggle_invert":  ActionToggleInvert,
		"toggle_history": ActionToggleHistory,
		"toggle_bounds":  ActionToggleBounds,

		"cycle_injection": ActionCycleInjection,
		"snapshot":        ActionSnapshot,
	}
	for i := 0; i < 9; i++ {
		m[fmt.Sprintf("layout_%d", i+1)] = ActionLayout1 + Action(i)
	}
	return m
}

// ActionByName resolves an action name, case-insensitive
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// ActionNames returns every bindable action name, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
