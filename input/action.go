package input

// Action is a simulation command produced by a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionRestart
	ActionToggleTrace
	ActionToggleDebug
	ActionToggleFill
	ActionToggleNodes
	ActionToggleInvert
	ActionToggleHistory
	ActionToggleBounds
	ActionCycleInjection
	ActionSnapshot
	ActionLayout1
	ActionLayout2
	ActionLayout3
	ActionLayout4
	ActionLayout5
	ActionLayout6
	ActionLayout7
	ActionLayout8
	ActionLayout9
)

// Layout returns the 1-based layout index selected by a layout action
func (a Action) Layout() (int, bool) {
	if a >= ActionLayout1 && a <= ActionLayout9 {
		return int(a-ActionLayout1) + 1, true
	}
	return 0, false
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
