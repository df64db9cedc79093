package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/vmath"
)

// maxEditsPerPass bounds inserts in one split or injection pass
// Keeps a runaway MaxDistance (or an exploded node) from stalling a frame
const maxEditsPerPass = 4096

// PathStats summarizes one path's geometry
type PathStats struct {
	Name    string
	Nodes   int
	Fixed   int
	Closed  bool
	Length  float64
	MinEdge float64
	MaxEdge float64
}

// Path is an ordered sequence of nodes relaxed each tick
// Closed paths connect their last node back to the first
type Path struct {
	Name string

	nodes  *NodeList
	closed bool
	bounds *Bounds // borrowed

	settings Settings
	display  Display
	palette  Palette

	// Active paints, derived from palette and display by applyColors
	stroke render.Paint
	fill   render.Paint

	history *History
	rng     *vmath.FastRand
	clock   *PausableClock

	lastInject time.Time

	// Scratch reused across ticks
	positions []vmath.Vec2
	ids       []NodeID
	plan      []curvatureEdit
}

type curvatureEdit struct {
	id   NodeID
	a, b vmath.Vec2
}

// NewPath creates a path through points with thresholds from s
func NewPath(points []vmath.Vec2, closed bool, s Settings) (*Path, error) {
	if len(points) == 0 {
		return nil, ErrTooFewNodes
	}
	p := &Path{
		nodes:    NewNodeList(len(points) * 2),
		closed:   closed,
		settings: s,
		display:  DefaultDisplay(),
		palette:  DefaultPalette(),
		history:  NewHistory(s.MaxHistory),
		rng:      vmath.NewFastRand(1),
	}
	for i, pt := range points {
		if !pt.IsFinite() {
			return nil, fmt.Errorf("point %d %v is not finite", i, pt)
		}
		p.nodes.PushBack(NewNode(pt, s))
	}
	p.applyColors()
	return p, nil
}

// Len returns the node count
func (p *Path) Len() int { return p.nodes.Len() }

// Closed reports whether the last node connects to the first
func (p *Path) Closed() bool { return p.closed }

// Nodes exposes the underlying list
func (p *Path) Nodes() *NodeList { return p.nodes }

// Bounds returns the containment polygon, nil when unbounded
func (p *Path) Bounds() *Bounds { return p.bounds }

// SetBounds assigns a borrowed containment polygon; nil removes it
func (p *Path) SetBounds(b *Bounds) { p.bounds = b }

// Settings returns the path's tunables
func (p *Path) Settings() Settings { return p.settings }

// History returns the snapshot ring
func (p *Path) History() *History { return p.history }

// Positions appends node positions in sequence order to dst
func (p *Path) Positions(dst []vmath.Vec2) []vmath.Vec2 {
	return p.nodes.Positions(dst)
}

// InjectionMode returns the active injection strategy
func (p *Path) InjectionMode() InjectionMode { return p.settings.InjectionMode }

// SetInjectionMode switches the injection strategy
func (p *Path) SetInjectionMode(m InjectionMode) { p.settings.InjectionMode = m }

// SetRand replaces the random source used by jitter and random injection
func (p *Path) SetRand(r *vmath.FastRand) {
	if r != nil {
		p.rng = r
	}
}

// SetClock attaches the clock driving periodic injection
// A path without a clock never injects on its own
func (p *Path) SetClock(c *PausableClock) {
	p.clock = c
	if c != nil {
		p.lastInject = c.Now()
	}
}

// Display returns the path's render toggles
func (p *Path) Display() Display { return p.display }

// SetDisplay replaces render toggles and recomputes colours
func (p *Path) SetDisplay(d Display) {
	if !d.ShowHistory {
		p.history.Clear()
	}
	p.display = d
	p.applyColors()
}

// Palette returns the path's colours
func (p *Path) Palette() Palette { return p.palette }

// SetPalette replaces colours and recomputes the active paints
func (p *Path) SetPalette(pal Palette) {
	p.palette = pal
	p.applyColors()
}

// SetInverted switches between the normal and inverted colour pairs
func (p *Path) SetInverted(on bool) {
	p.display.Inverted = on
	p.applyColors()
}

// SetTrace switches trace-mode opacity
func (p *Path) SetTrace(on bool) {
	p.display.Trace = on
	p.applyColors()
}

// StrokePaint returns the active edge paint
func (p *Path) StrokePaint() render.Paint { return p.stroke }

// FillPaint returns the active fill paint
func (p *Path) FillPaint() render.Paint { return p.fill }

// applyColors picks the colour pair for the inversion state and applies trace alpha
func (p *Path) applyColors() {
	stroke, fill := p.palette.Stroke, p.palette.Fill
	if p.display.Inverted {
		stroke, fill = p.palette.InvertedStroke, p.palette.InvertedFill
	}
	alpha := 1.0
	if p.display.Trace {
		alpha = p.palette.TraceAlpha
	}
	p.stroke = render.Paint{Color: stroke, Alpha: alpha}.WithWidth(p.palette.StrokeWidth)
	p.fill = render.Paint{Color: fill, Alpha: alpha}
}

// prevOf returns the previous neighbour, wrapping on closed paths of 3+ nodes
func (p *Path) prevOf(id NodeID) NodeID {
	prev := p.nodes.Prev(id)
	if prev == NoNode && p.wraps() {
		return p.nodes.Back()
	}
	return prev
}

// nextOf returns the following neighbour, wrapping on closed paths of 3+ nodes
func (p *Path) nextOf(id NodeID) NodeID {
	next := p.nodes.Next(id)
	if next == NoNode && p.wraps() {
		return p.nodes.Front()
	}
	return next
}

func (p *Path) wraps() bool {
	return p.closed && p.nodes.Len() >= 3
}

// insertBefore links a midpoint node between id and its previous neighbour
// On a wrapping path the edge into the head is closed by the tail, so the node is appended
func (p *Path) insertBefore(id NodeID, pos vmath.Vec2) NodeID {
	n := NewNode(pos, p.settings)
	if id == p.nodes.Front() && p.wraps() {
		return p.nodes.PushBack(n)
	}
	return p.nodes.InsertBefore(id, n)
}

// Stats measures the current geometry
func (p *Path) Stats() PathStats {
	st := PathStats{Name: p.Name, Nodes: p.nodes.Len(), Closed: p.closed}
	first := true
	for id := p.nodes.Front(); id != NoNode; id = p.nodes.Next(id) {
		n := p.nodes.Get(id)
		if n.IsFixed() {
			st.Fixed++
		}
		prev := p.prevOf(id)
		if prev == NoNode {
			continue
		}
		d := n.Distance(p.nodes.Get(prev))
		st.Length += d
		if first || d < st.MinEdge {
			st.MinEdge = d
		}
		if first || d > st.MaxEdge {
			st.MaxEdge = d
		}
		first = false
	}
	return st
}

// edgeOK reports whether d is a usable edge length
func edgeOK(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
