package engine

import (
	"time"

	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/vmath"
)

// WorldStats aggregates path statistics for one frame
type WorldStats struct {
	Frame  uint64
	Paused bool
	Nodes  int
	Fixed  int
	Length float64
	Paths  []PathStats
}

// World owns paths in draw order and the spatial index they repel through
// Not safe for concurrent use; drive Tick and Draw from one goroutine
type World struct {
	paths []*Path
	grid  *SpatialGrid
	clock *PausableClock
	rng   *vmath.FastRand

	display Display
	palette Palette // background colours

	paused       bool
	resumeAt     time.Time // real time of a scheduled resume, zero when none
	clearPending bool
	frame        uint64
}

// NewWorld creates an empty running world; nil clock or rng get defaults
func NewWorld(clock *PausableClock, rng *vmath.FastRand) *World {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if rng == nil {
		rng = vmath.NewFastRand(uint64(time.Now().UnixNano()))
	}
	return &World{
		grid:         NewSpatialGrid(),
		clock:        clock,
		rng:          rng,
		display:      DefaultDisplay(),
		palette:      DefaultPalette(),
		clearPending: true,
	}
}

// Add registers a path, attaching the world clock, random source and toggles
func (w *World) Add(p *Path) {
	p.SetClock(w.clock)
	p.SetRand(w.rng)
	p.SetDisplay(w.display)
	w.paths = append(w.paths, p)
}

// Paths returns registered paths in draw order
// INTERNAL USE ONLY - callers must not modify the slice
func (w *World) Paths() []*Path { return w.paths }

// Clear removes every path and drops the index
func (w *World) Clear() {
	w.paths = w.paths[:0]
	w.grid.Clear()
	w.clearPending = true
}

// Clock returns the simulation clock
func (w *World) Clock() *PausableClock { return w.clock }

// Rand returns the shared random source
func (w *World) Rand() *vmath.FastRand { return w.rng }

// Grid returns the spatial index built by the last Tick
func (w *World) Grid() *SpatialGrid { return w.grid }

// Frame returns the number of ticks that advanced the simulation
func (w *World) Frame() uint64 { return w.frame }

// Tick resumes a scheduled pause if due, then advances every path one step
// Returns false when paused
func (w *World) Tick() bool {
	if w.paused && !w.resumeAt.IsZero() && !w.clock.RealTime().Before(w.resumeAt) {
		w.Resume()
	}
	if w.paused {
		return false
	}

	w.rebuildIndex()
	for _, p := range w.paths {
		p.Iterate(w.grid)
	}
	w.frame++
	return true
}

// rebuildIndex indexes every node of every path at its current position
func (w *World) rebuildIndex() {
	w.grid.Clear()
	cell := 0.0
	for _, p := range w.paths {
		cell = max(cell, p.settings.RepulsionRadius)
		p.nodes.Each(func(id NodeID, n *Node) {
			w.grid.Add(n.Pos, p, id)
		})
	}
	w.grid.Build(cell)
}

// Draw paints the background unless trace mode keeps previous frames, then every path
func (w *World) Draw(s render.Surface) {
	if w.display.DrawBackground && (!w.display.Trace || w.clearPending) {
		s.Clear(w.palette.BackgroundFor(w.display.Inverted))
	}
	w.clearPending = false
	for _, p := range w.paths {
		p.Draw(s)
	}
}

// RequestClear forces the next Draw to paint the background, even in trace mode
func (w *World) RequestClear() { w.clearPending = true }

// Pause stops ticking and freezes the clock
func (w *World) Pause() {
	w.paused = true
	w.clock.Pause()
}

// Resume restarts ticking and cancels any scheduled resume
func (w *World) Resume() {
	w.paused = false
	w.resumeAt = time.Time{}
	w.clock.Resume()
}

// TogglePause flips the paused state, returning the new state
func (w *World) TogglePause() bool {
	if w.paused {
		w.Resume()
	} else {
		w.Pause()
	}
	return w.paused
}

// PauseFor pauses now and resumes on the first Tick at least d of real time later
func (w *World) PauseFor(d time.Duration) {
	w.Pause()
	w.resumeAt = w.clock.RealTime().Add(d)
}

// Paused reports whether ticks are suspended
func (w *World) Paused() bool { return w.paused }

// Display returns the broadcast toggles
func (w *World) Display() Display { return w.display }

// SetDisplay replaces the toggles on the world and every path
func (w *World) SetDisplay(d Display) {
	if d.Trace != w.display.Trace || d.Inverted != w.display.Inverted {
		w.clearPending = true
	}
	w.display = d
	for _, p := range w.paths {
		p.SetDisplay(d)
	}
}

// Palette returns the background palette
func (w *World) Palette() Palette { return w.palette }

// SetPalette replaces the background colours
func (w *World) SetPalette(pal Palette) {
	w.palette = pal
	w.clearPending = true
}

func (w *World) toggle(flip func(d *Display) bool) bool {
	d := w.display
	on := flip(&d)
	w.SetDisplay(d)
	return on
}

// ToggleTrace flips trace mode and returns the new state
func (w *World) ToggleTrace() bool {
	return w.toggle(func(d *Display) bool { d.Trace = !d.Trace; return d.Trace })
}

// ToggleInverted flips the colour inversion and returns the new state
func (w *World) ToggleInverted() bool {
	return w.toggle(func(d *Display) bool { d.Inverted = !d.Inverted; return d.Inverted })
}

// ToggleDebug flips per-segment gradient colouring
func (w *World) ToggleDebug() bool {
	return w.toggle(func(d *Display) bool { d.Debug = !d.Debug; return d.Debug })
}

// ToggleNodes flips node marker visibility
func (w *World) ToggleNodes() bool {
	return w.toggle(func(d *Display) bool { d.ShowNodes = !d.ShowNodes; return d.ShowNodes })
}

// ToggleFill flips closed path filling
func (w *World) ToggleFill() bool {
	return w.toggle(func(d *Display) bool { d.Fill = !d.Fill; return d.Fill })
}

// ToggleHistory flips trailing history capture and rendering
func (w *World) ToggleHistory() bool {
	return w.toggle(func(d *Display) bool { d.ShowHistory = !d.ShowHistory; return d.ShowHistory })
}

// ToggleBounds flips bounds outlines
func (w *World) ToggleBounds() bool {
	return w.toggle(func(d *Display) bool { d.DrawBounds = !d.DrawBounds; return d.DrawBounds })
}

// SetInjectionMode switches every path's injection strategy
func (w *World) SetInjectionMode(m InjectionMode) {
	for _, p := range w.paths {
		p.SetInjectionMode(m)
	}
}

// Stats aggregates per-path statistics
func (w *World) Stats() WorldStats {
	st := WorldStats{Frame: w.frame, Paused: w.paused, Paths: make([]PathStats, 0, len(w.paths))}
	for _, p := range w.paths {
		ps := p.Stats()
		st.Nodes += ps.Nodes
		st.Fixed += ps.Fixed
		st.Length += ps.Length
		st.Paths = append(st.Paths, ps)
	}
	return st
}
