package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/vmath"
)

func newTestWorld() (*World, *MockTime) {
	mock := NewMockTime(epoch)
	return NewWorld(NewPausableClock(mock), vmath.NewFastRand(7)), mock
}

func TestWorldRepulsionAcrossPaths(t *testing.T) {
	w, _ := newTestWorld()
	s := quietSettings()
	a := mustPath(t, []vmath.Vec2{vmath.V(0, 0)}, false, s)
	b := mustPath(t, []vmath.Vec2{vmath.V(1, 0)}, false, s)
	w.Add(a)
	w.Add(b)

	if !w.Tick() {
		t.Fatal("Tick should advance a running world")
	}
	pa := a.Positions(nil)[0]
	pb := b.Positions(nil)[0]
	if pa.X >= 0 || pb.X <= 1 {
		t.Errorf("Nodes should push apart, got %v and %v", pa, pb)
	}
	if pa.Y != 0 || pb.Y != 0 {
		t.Errorf("Repulsion left the axis: %v %v", pa, pb)
	}
}

func TestWorldSelfExcluded(t *testing.T) {
	w, _ := newTestWorld()
	p := mustPath(t, []vmath.Vec2{vmath.V(3, 4)}, false, quietSettings())
	w.Add(p)
	for i := 0; i < 5; i++ {
		w.Tick()
	}
	if got := p.Positions(nil)[0]; got != vmath.V(3, 4) {
		t.Errorf("Lone node moved to %v", got)
	}
	if w.Grid().Len() != 1 {
		t.Errorf("Expected 1 indexed node, got %d", w.Grid().Len())
	}
}

func TestWorldPauseFor(t *testing.T) {
	w, mock := newTestWorld()
	w.Add(mustPath(t, []vmath.Vec2{vmath.V(0, 0), vmath.V(5, 0)}, false, quietSettings()))

	w.PauseFor(time.Second)
	if w.Tick() {
		t.Fatal("Paused world ticked")
	}
	mock.Advance(500 * time.Millisecond)
	if w.Tick() {
		t.Fatal("Resumed before the delay")
	}
	mock.Advance(600 * time.Millisecond)
	if !w.Tick() {
		t.Fatal("Expected resume after the delay")
	}
	if w.Paused() || w.Frame() != 1 {
		t.Errorf("Expected running at frame 1, got paused=%v frame=%d", w.Paused(), w.Frame())
	}
	if got := w.Clock().PausedFor(); got != 1100*time.Millisecond {
		t.Errorf("Expected 1.1s of pause on the clock, got %v", got)
	}
}

func TestWorldTogglePause(t *testing.T) {
	w, _ := newTestWorld()
	if !w.TogglePause() || !w.Paused() || !w.Clock().IsPaused() {
		t.Fatal("Toggle should pause world and clock")
	}
	if w.TogglePause() || w.Paused() {
		t.Fatal("Second toggle should resume")
	}

	// Manual resume cancels a scheduled one
	w.PauseFor(time.Hour)
	w.Resume()
	w.Pause()
	if w.Tick() {
		t.Error("Stale resume time unpaused the world")
	}
}

func TestWorldBroadcastsToggles(t *testing.T) {
	w, _ := newTestWorld()
	p1 := mustPath(t, []vmath.Vec2{vmath.V(0, 0), vmath.V(5, 0)}, false, quietSettings())
	p2 := mustPath(t, []vmath.Vec2{vmath.V(0, 5), vmath.V(5, 5)}, false, quietSettings())
	w.Add(p1)
	w.ToggleInverted()
	w.Add(p2)

	for _, p := range []*Path{p1, p2} {
		if !p.Display().Inverted {
			t.Error("Inverted toggle not applied to path")
		}
		if p.StrokePaint().Color != p.Palette().InvertedStroke {
			t.Error("Path colours not inverted")
		}
	}

	toggles := []struct {
		name   string
		toggle func() bool
		read   func(Display) bool
	}{
		{"trace", w.ToggleTrace, func(d Display) bool { return d.Trace }},
		{"debug", w.ToggleDebug, func(d Display) bool { return d.Debug }},
		{"nodes", w.ToggleNodes, func(d Display) bool { return d.ShowNodes }},
		{"fill", w.ToggleFill, func(d Display) bool { return d.Fill }},
		{"history", w.ToggleHistory, func(d Display) bool { return d.ShowHistory }},
		{"bounds", w.ToggleBounds, func(d Display) bool { return d.DrawBounds }},
	}
	for _, tt := range toggles {
		on := tt.toggle()
		if !on || !tt.read(w.Display()) || !tt.read(p1.Display()) || !tt.read(p2.Display()) {
			t.Errorf("%s: toggle not broadcast", tt.name)
		}
		if tt.toggle() || tt.read(p2.Display()) {
			t.Errorf("%s: second toggle should switch off", tt.name)
		}
	}

	w.SetInjectionMode(InjectCurvature)
	if p1.InjectionMode() != InjectCurvature || p2.InjectionMode() != InjectCurvature {
		t.Error("Injection mode not broadcast")
	}
}

func TestWorldDrawBackground(t *testing.T) {
	w, _ := newTestWorld()
	w.Add(mustPath(t, []vmath.Vec2{vmath.V(0, 0), vmath.V(5, 0)}, false, quietSettings()))
	rec := render.NewRecorder(10, 10)

	w.Draw(rec)
	if rec.Count(render.OpClear) != 1 || rec.Ops[0].Kind != render.OpClear {
		t.Fatalf("Expected background first, got %+v", rec.Ops)
	}
	if rec.Ops[0].Paint.Color != w.Palette().Background {
		t.Error("Wrong background colour")
	}

	// Trace keeps previous frames after the one clear it requests
	w.ToggleTrace()
	rec.Reset()
	w.Draw(rec)
	w.Draw(rec)
	if got := rec.Count(render.OpClear); got != 1 {
		t.Errorf("Expected a single clear in trace mode, got %d", got)
	}

	w.ToggleTrace()
	w.ToggleInverted()
	rec.Reset()
	w.Draw(rec)
	if rec.Ops[0].Paint.Color != w.Palette().InvertedBackground {
		t.Error("Inverted background not used")
	}
}

func TestWorldStatsAndClear(t *testing.T) {
	w, _ := newTestWorld()
	w.Add(mustPath(t, []vmath.Vec2{vmath.V(0, 0), vmath.V(3, 0)}, false, quietSettings()))
	w.Add(mustPath(t, []vmath.Vec2{vmath.V(0, 5), vmath.V(4, 5)}, false, quietSettings()))

	st := w.Stats()
	if len(st.Paths) != 2 || st.Nodes != 4 || st.Length != 7 {
		t.Errorf("Unexpected stats %+v", st)
	}

	w.Clear()
	if len(w.Paths()) != 0 || w.Stats().Nodes != 0 {
		t.Error("Clear should drop every path")
	}
}
