package session

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tendril/audio"
	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/input"
)

// HandleKey maps a key event through the key table and applies it
// Returns true when the session should end
func (s *Session) HandleKey(ev *tcell.EventKey) bool {
	return s.Handle(s.keys.Lookup(ev))
}

// Handle applies one action; returns true on quit
// Action errors are logged, the session keeps running
func (s *Session) Handle(a input.Action) bool {
	w := s.world

	switch a {
	case input.ActionNone:
	case input.ActionQuit:
		return true
	case input.ActionPause:
		if w.TogglePause() {
			s.play(audio.CuePause)
		} else {
			s.play(audio.CueResume)
		}
	case input.ActionRestart:
		if err := s.Restart(); err != nil {
			log.Printf("Restart failed: %v", err)
		}
	case input.ActionToggleTrace:
		w.ToggleTrace()
	case input.ActionToggleDebug:
		w.ToggleDebug()
	case input.ActionToggleFill:
		w.ToggleFill()
	case input.ActionToggleNodes:
		w.ToggleNodes()
	case input.ActionToggleInvert:
		w.ToggleInverted()
	case input.ActionToggleHistory:
		w.ToggleHistory()
	case input.ActionToggleBounds:
		w.ToggleBounds()
	case input.ActionCycleInjection:
		s.CycleInjection()
	case input.ActionSnapshot:
		path, err := s.Snapshot()
		if err != nil {
			log.Printf("Snapshot failed: %v", err)
			break
		}
		log.Printf("Snapshot saved: %s", path)
		s.play(audio.CueSnapshot)
	default:
		if i, ok := a.Layout(); ok {
			if err := s.SelectLayout(i - 1); err != nil {
				log.Printf("Select layout: %v", err)
			}
		}
	}
	return false
}

// CycleInjection switches every path to the next injection mode and returns it
func (s *Session) CycleInjection() engine.InjectionMode {
	next := engine.InjectRandom
	if s.settings.InjectionMode == engine.InjectRandom {
		next = engine.InjectCurvature
	}
	s.settings.InjectionMode = next
	s.world.SetInjectionMode(next)
	log.Printf("Injection mode: %s", next)
	return next
}
