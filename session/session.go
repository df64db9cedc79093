// Package session ties the simulation world to a layout, key bindings and sound
package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/tendril/audio"
	"github.com/lixenwraith/tendril/config"
	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/input"
	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/scene"
	"github.com/lixenwraith/tendril/vmath"
)

// ErrNoLayouts is returned when neither a scene file nor built-in layouts are available
var ErrNoLayouts = errors.New("no layouts available")

// Options carries the runtime pieces config does not describe
type Options struct {
	Width, Height float64             // world size; zero takes run.width and run.height
	Time          engine.TimeSource   // nil uses system time
	Sound         *audio.SoundManager // nil is silent
}

// Session holds all simulation state for one run
// Not safe for concurrent use
type Session struct {
	settings engine.Settings
	palette  engine.Palette
	keys     *input.KeyTable

	layouts []scene.Layout
	active  int

	world *engine.World
	clock *engine.PausableClock
	rng   *vmath.FastRand
	sound *audio.SoundManager

	width, height float64
	restartHold   time.Duration
	snapshotDir   string
	snapshotScale float64
}

// New builds a session from cfg and starts the configured layout
func New(cfg *config.Config, opts Options) (*Session, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, err
	}

	s := &Session{
		settings:      settings,
		palette:       palette,
		keys:          keys,
		sound:         opts.Sound,
		width:         opts.Width,
		height:        opts.Height,
		restartHold:   cfg.Run.RestartHold,
		snapshotDir:   cfg.Run.SnapshotDir,
		snapshotScale: cfg.Run.Scale,
	}
	if s.width == 0 {
		s.width = cfg.Run.Width
	}
	if s.height == 0 {
		s.height = cfg.Run.Height
	}

	if err := s.loadLayouts(cfg.Run); err != nil {
		return nil, err
	}

	seed := cfg.Run.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.rng = vmath.NewFastRand(seed)
	s.clock = engine.NewPausableClock(opts.Time)
	s.world = engine.NewWorld(s.clock, s.rng)
	s.world.SetDisplay(cfg.Toggles())
	s.world.SetPalette(palette)

	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadLayouts uses the scene file when given, otherwise every registered layout
func (s *Session) loadLayouts(run config.RunConfig) error {
	if run.Scene != "" {
		l, err := scene.Load(run.Scene)
		if err != nil {
			return err
		}
		s.layouts = []scene.Layout{l}
		return nil
	}

	s.layouts = scene.Layouts()
	if len(s.layouts) == 0 {
		return ErrNoLayouts
	}
	if run.Layout == "" {
		return nil
	}
	l, err := scene.Lookup(run.Layout)
	if err != nil {
		return err
	}
	for i := range s.layouts {
		if s.layouts[i].Name == l.Name {
			s.active = i
		}
	}
	return nil
}

// build replaces the world's paths with a fresh copy of the active layout
func (s *Session) build() error {
	l := s.layouts[s.active]
	paths, err := l.Paths(scene.BuildContext{
		Width:    s.width,
		Height:   s.height,
		Settings: s.settings,
		Palette:  s.palette,
		Rand:     s.rng,
	})
	if err != nil {
		return fmt.Errorf("build layout %s: %w", l.Name, err)
	}

	s.world.Clear()
	for _, p := range paths {
		s.world.Add(p)
	}
	log.Printf("Layout %s: %d paths", l.Name, len(paths))
	return nil
}

// Restart rebuilds the active layout and holds it still for the restart delay
func (s *Session) Restart() error {
	return s.restart(audio.CueRestart)
}

func (s *Session) restart(cue audio.Cue) error {
	if err := s.build(); err != nil {
		return err
	}
	if s.restartHold > 0 {
		s.world.PauseFor(s.restartHold)
	}
	s.play(cue)
	return nil
}

// SelectLayout activates layout i (0-based) and restarts
func (s *Session) SelectLayout(i int) error {
	if i < 0 || i >= len(s.layouts) {
		return fmt.Errorf("layout %d of %d: %w", i+1, len(s.layouts), scene.ErrUnknownLayout)
	}
	s.active = i
	return s.restart(audio.CueLayout)
}

// Resize changes the world size and restarts when it differs
func (s *Session) Resize(w, h float64) error {
	if w == s.width && h == s.height {
		return nil
	}
	s.width, s.height = w, h
	return s.Restart()
}

// Tick advances the simulation one step; false while paused
func (s *Session) Tick() bool {
	return s.world.Tick()
}

// Draw paints the world onto surface
func (s *Session) Draw(surface render.Surface) {
	s.world.Draw(surface)
}

// World returns the simulation world
func (s *Session) World() *engine.World { return s.world }

// Clock returns the simulation clock
func (s *Session) Clock() *engine.PausableClock { return s.clock }

// Keys returns the active key table
func (s *Session) Keys() *input.KeyTable { return s.keys }

// Settings returns the settings new paths are built with
func (s *Session) Settings() engine.Settings { return s.settings }

// Layout returns the active layout
func (s *Session) Layout() scene.Layout { return s.layouts[s.active] }

// Layouts returns the selectable layouts in order
func (s *Session) Layouts() []scene.Layout { return s.layouts }

// Size returns the world size
func (s *Session) Size() (float64, float64) { return s.width, s.height }

func (s *Session) play(c audio.Cue) {
	if s.sound != nil {
		s.sound.Play(c)
	}
}
