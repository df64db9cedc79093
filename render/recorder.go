package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/vmath"
)

// OpKind identifies a recorded draw primitive
type OpKind uint8

const (
	OpClear OpKind = iota
	OpPolyline
	OpFill
	OpLine
	OpCircle
)

// Op is one recorded draw call; Points is a private copy
type Op struct {
	Kind   OpKind
	Points []vmath.Vec2
	Closed bool
	Filled bool
	Radius float64
	Paint  Paint
}

// Recorder is a Surface that records draw calls instead of rasterizing
// Used by tests and for counting primitives in headless runs
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder creates a recorder mapping a w x h world
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear(bg colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Paint: Solid(bg)})
}

func (r *Recorder) Polyline(pts []vmath.Vec2, closed bool, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpPolyline, Points: clonePoints(pts), Closed: closed, Paint: p})
}

func (r *Recorder) FillPolygon(pts []vmath.Vec2, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Points: clonePoints(pts), Closed: true, Paint: p})
}

func (r *Recorder) Line(a, b vmath.Vec2, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []vmath.Vec2{a, b}, Paint: p})
}

func (r *Recorder) Circle(center vmath.Vec2, rad float64, p Paint, filled bool) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []vmath.Vec2{center}, Radius: rad, Filled: filled, Paint: p})
}

// Count returns how many ops of kind were recorded
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func clonePoints(pts []vmath.Vec2) []vmath.Vec2 {
	out := make([]vmath.Vec2, len(pts))
	copy(out, pts)
	return out
}
