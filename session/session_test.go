package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tendril/audio"
	"github.com/lixenwraith/tendril/config"
	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/input"
	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/scene"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Run.Seed = 7
	cfg.Run.Layout = "circle"
	cfg.Run.SnapshotDir = t.TempDir()
	return cfg
}

func newTestSession(t *testing.T, cfg *config.Config) (*Session, *engine.MockTime) {
	t.Helper()
	mock := engine.NewMockTime(epoch)
	s, err := New(cfg, Options{Width: 200, Height: 100, Time: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, mock
}

func TestNewBuildsConfiguredLayout(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	if s.Layout().Name != "circle" {
		t.Errorf("Expected circle layout, got %s", s.Layout().Name)
	}
	if n := len(s.World().Paths()); n != 1 {
		t.Errorf("Expected 1 path, got %d", n)
	}
	if s.World().Paused() {
		t.Errorf("Expected first build to run immediately")
	}
	if w, h := s.Size(); w != 200 || h != 100 {
		t.Errorf("Expected 200x100, got %vx%v", w, h)
	}
	if !s.Tick() {
		t.Errorf("Expected tick to advance")
	}
}

func TestNewDefaultsToRunSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.Width, cfg.Run.Height = 320, 240
	s, err := New(cfg, Options{Time: engine.NewMockTime(epoch)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Errorf("Expected 320x240, got %vx%v", w, h)
	}
}

func TestNewErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.Layout = "nope"
	if _, err := New(cfg, Options{Width: 10, Height: 10}); !errors.Is(err, scene.ErrUnknownLayout) {
		t.Errorf("Expected ErrUnknownLayout, got %v", err)
	}

	cfg = testConfig(t)
	cfg.Palette.Stroke = "green"
	if _, err := New(cfg, Options{Width: 10, Height: 10}); err == nil {
		t.Errorf("Expected palette error")
	}

	cfg = testConfig(t)
	cfg.Sim.InjectionMode = "sideways"
	if _, err := New(cfg, Options{Width: 10, Height: 10}); !errors.Is(err, engine.ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}

	cfg = testConfig(t)
	if _, err := New(cfg, Options{Width: -1, Height: 10}); !errors.Is(err, scene.ErrEmptyWorld) {
		t.Errorf("Expected ErrEmptyWorld, got %v", err)
	}
}

func TestHandleToggles(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	tests := []struct {
		action input.Action
		get    func(d engine.Display) bool
	}{
		{input.ActionToggleTrace, func(d engine.Display) bool { return d.Trace }},
		{input.ActionToggleDebug, func(d engine.Display) bool { return d.Debug }},
		{input.ActionToggleFill, func(d engine.Display) bool { return d.Fill }},
		{input.ActionToggleNodes, func(d engine.Display) bool { return d.ShowNodes }},
		{input.ActionToggleInvert, func(d engine.Display) bool { return d.Inverted }},
		{input.ActionToggleHistory, func(d engine.Display) bool { return d.ShowHistory }},
		{input.ActionToggleBounds, func(d engine.Display) bool { return d.DrawBounds }},
	}
	for _, tt := range tests {
		before := tt.get(s.World().Display())
		if s.Handle(tt.action) {
			t.Errorf("%s: unexpected quit", tt.action)
		}
		if got := tt.get(s.World().Display()); got == before {
			t.Errorf("%s: expected toggle to flip %v", tt.action, before)
		}
		s.Handle(tt.action)
		if got := tt.get(s.World().Display()); got != before {
			t.Errorf("%s: expected second toggle to restore %v", tt.action, before)
		}
	}
}

func TestHandleQuit(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))
	if !s.Handle(input.ActionQuit) {
		t.Errorf("Expected quit")
	}
	if s.Handle(input.ActionNone) {
		t.Errorf("Expected none to keep running")
	}
}

func TestHandlePause(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	s.Handle(input.ActionPause)
	if !s.World().Paused() {
		t.Fatalf("Expected paused")
	}
	frame := s.World().Frame()
	if s.Tick() || s.World().Frame() != frame {
		t.Errorf("Expected no progress while paused")
	}

	s.Handle(input.ActionPause)
	if s.World().Paused() {
		t.Errorf("Expected resumed")
	}
}

func TestRestartHoldsThenResumes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.RestartHold = 500 * time.Millisecond
	s, mock := newTestSession(t, cfg)

	for range 5 {
		s.Tick()
	}
	s.Handle(input.ActionRestart)
	if !s.World().Paused() {
		t.Fatalf("Expected restart to hold")
	}
	if s.Tick() {
		t.Errorf("Expected tick to stall during hold")
	}

	mock.Advance(499 * time.Millisecond)
	if s.Tick() {
		t.Errorf("Expected hold to last the full delay")
	}
	mock.Advance(time.Millisecond)
	if !s.Tick() {
		t.Errorf("Expected tick to resume after hold")
	}
}

func TestRestartResetsGeometry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.RestartHold = 0
	s, _ := newTestSession(t, cfg)

	initial := s.World().Paths()[0].Len()
	for range 50 {
		s.Tick()
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if n := len(s.World().Paths()); n != 1 {
		t.Fatalf("Expected 1 path after restart, got %d", n)
	}
	if got := s.World().Paths()[0].Len(); got != initial {
		t.Errorf("Expected %d nodes after restart, got %d", initial, got)
	}
	if s.World().Paused() {
		t.Errorf("Expected zero hold to skip the pause")
	}
}

func TestSelectLayout(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))
	layouts := s.Layouts()

	s.Handle(input.ActionLayout1)
	if s.Layout().Name != layouts[0].Name {
		t.Errorf("Expected %s, got %s", layouts[0].Name, s.Layout().Name)
	}

	s.Handle(input.ActionLayout2)
	if s.Layout().Name != layouts[1].Name {
		t.Errorf("Expected %s, got %s", layouts[1].Name, s.Layout().Name)
	}

	if len(layouts) < 9 {
		s.Handle(input.ActionLayout9)
		if s.Layout().Name != layouts[1].Name {
			t.Errorf("Expected out of range layout to be ignored, got %s", s.Layout().Name)
		}
		if err := s.SelectLayout(8); !errors.Is(err, scene.ErrUnknownLayout) {
			t.Errorf("Expected ErrUnknownLayout, got %v", err)
		}
	}
}

func TestCycleInjection(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	s.Handle(input.ActionCycleInjection)
	if s.Settings().InjectionMode != engine.InjectCurvature {
		t.Errorf("Expected curvature, got %s", s.Settings().InjectionMode)
	}
	for _, p := range s.World().Paths() {
		if p.InjectionMode() != engine.InjectCurvature {
			t.Errorf("Expected path %s in curvature mode", p.Name)
		}
	}

	// Mode survives a restart
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if p := s.World().Paths()[0]; p.InjectionMode() != engine.InjectCurvature {
		t.Errorf("Expected rebuilt path in curvature mode, got %s", p.InjectionMode())
	}

	if m := s.CycleInjection(); m != engine.InjectRandom {
		t.Errorf("Expected random, got %s", m)
	}
}

func TestHandleKey(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	if s.HandleKey(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)) {
		t.Errorf("Unexpected quit")
	}
	if !s.World().Display().Trace {
		t.Errorf("Expected t to toggle trace")
	}
	if !s.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("Expected q to quit")
	}
	if s.HandleKey(tcell.NewEventKey(tcell.KeyRune, '~', tcell.ModNone)) {
		t.Errorf("Expected unbound key to be ignored")
	}
}

func TestKeyOverrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.Keys = map[string]string{"x": "quit", "q": "none"}
	s, _ := newTestSession(t, cfg)

	if !s.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Errorf("Expected x to quit")
	}
	if s.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("Expected q unbound")
	}
}

func TestDraw(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))
	rec := render.NewRecorder(200, 100)

	s.Draw(rec)
	if rec.Count(render.OpClear) != 1 {
		t.Errorf("Expected background clear, got %d", rec.Count(render.OpClear))
	}
	if rec.Count(render.OpPolyline) != 1 {
		t.Errorf("Expected one polyline, got %d", rec.Count(render.OpPolyline))
	}
}

func TestResize(t *testing.T) {
	cfg := testConfig(t)
	s, _ := newTestSession(t, cfg)

	if err := s.Resize(200, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.World().Paused() {
		t.Errorf("Expected same size to be a no-op")
	}

	if err := s.Resize(400, 300); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := s.Size(); w != 400 || h != 300 {
		t.Errorf("Expected 400x300, got %vx%v", w, h)
	}
	if !s.World().Paused() {
		t.Errorf("Expected resize to restart with a hold")
	}
}

func TestSnapshot(t *testing.T) {
	cfg := testConfig(t)
	s, _ := newTestSession(t, cfg)

	path, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if filepath.Dir(path) != cfg.Run.SnapshotDir {
		t.Errorf("Expected snapshot in %s, got %s", cfg.Run.SnapshotDir, path)
	}
	if want := "tendril-circle-20250101-000000.000.png"; filepath.Base(path) != want {
		t.Errorf("Expected %s, got %s", want, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("Expected non-empty PNG")
	}
}

func TestRenderSize(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t))

	img := s.Render(2).Image()
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("Expected 400x200 image, got %dx%d", b.Dx(), b.Dy())
	}
}

const testScene = `
name: pond
units: relative
paths:
  - shape: circle
    center: [0.5, 0.5]
    radius: 0.2
  - shape: line
    from: [0.1, 0.1]
    to: [0.1, 0.9]
`

func TestSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pond.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg := testConfig(t)
	cfg.Run.Scene = path
	s, _ := newTestSession(t, cfg)

	if len(s.Layouts()) != 1 || s.Layout().Name != "pond" {
		t.Fatalf("Expected only the pond layout, got %d %s", len(s.Layouts()), s.Layout().Name)
	}
	if n := len(s.World().Paths()); n != 2 {
		t.Errorf("Expected 2 paths, got %d", n)
	}
}

func TestSilentSound(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, Options{Width: 100, Height: 100, Time: engine.NewMockTime(epoch), Sound: audio.NewSoundManager(0.5)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Uninitialized manager swallows cues
	s.Handle(input.ActionPause)
	s.Handle(input.ActionRestart)
	s.Handle(input.ActionLayout1)
}
