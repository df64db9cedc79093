package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tendril/audio"
	"github.com/lixenwraith/tendril/config"
	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/session"
)

const (
	unitsPerDot = 2.0 // world units per braille dot
	statusRows  = 1
)

// app drives one session on a terminal screen
type app struct {
	screen tcell.Screen
	sess   *session.Session
	canvas *render.Canvas
	fps    int
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTENDRIL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Audio.Volume)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, runs silently
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sound.Cleanup()
		}
	}

	a, err := newApp(screen, cfg, sound)
	if err != nil {
		return err
	}
	return a.run(pollEvents(screen))
}

func newApp(screen tcell.Screen, cfg *config.Config, sound *audio.SoundManager) (*app, error) {
	cols, rows := screen.Size()
	w, h := worldSize(cols, rows)

	sess, err := session.New(cfg, session.Options{Width: w, Height: h, Sound: sound})
	if err != nil {
		return nil, err
	}

	fps := cfg.Run.FPS
	if fps <= 0 {
		fps = 30
	}
	return &app{
		screen: screen,
		sess:   sess,
		canvas: render.NewCanvas(cols, max(rows-statusRows, 0), w, h),
		fps:    fps,
	}, nil
}

// worldSize maps a terminal grid, minus the status line, to world units
func worldSize(cols, rows int) (float64, float64) {
	cols = max(cols, 1)
	rows = max(rows-statusRows, 1)
	return float64(cols*render.DotsPerCellX) * unitsPerDot, float64(rows*render.DotsPerCellY) * unitsPerDot
}

// pollEvents forwards screen events until the screen is finalized
func pollEvents(screen tcell.Screen) <-chan tcell.Event {
	events := make(chan tcell.Event, 256)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	return events
}

// run ticks and draws at the configured rate until quit or the event stream ends
func (a *app) run(events <-chan tcell.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	a.frame()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			a.frame()
		}
	}
}

// handleEvent returns true on quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.sess.HandleKey(ev)
	case *tcell.EventResize:
		a.resize()
	}
	return false
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	w, h := worldSize(cols, rows)
	a.canvas.Resize(cols, max(rows-statusRows, 0))
	a.canvas.SetWorld(w, h)
	if err := a.sess.Resize(w, h); err != nil {
		log.Printf("Resize to %dx%d: %v", cols, rows, err)
	}
	a.sess.World().RequestClear()
	a.screen.Sync()
}

// frame advances the simulation and presents it
func (a *app) frame() {
	a.sess.Tick()
	a.sess.Draw(a.canvas)
	a.canvas.Flush(a.screen)
	a.drawStatus()
	a.screen.Show()
}

// drawStatus writes the one-line summary under the canvas
func (a *app) drawStatus() {
	cols, rows := a.screen.Size()
	if rows < 1 {
		return
	}
	row := rows - 1

	st := a.sess.World().Stats()
	state := "running"
	if st.Paused {
		state = "paused"
	}
	text := fmt.Sprintf(" %s | %s | %s | paths %d nodes %d fixed %d | frame %d",
		a.sess.Layout().Name, state, a.sess.Settings().InjectionMode, len(st.Paths), st.Nodes, st.Fixed, st.Frame)

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		a.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		a.screen.SetContent(col, row, ' ', nil, style)
	}
}
