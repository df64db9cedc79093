package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/vmath"
)

// Paint describes how a primitive is stroked or filled
type Paint struct {
	Color colorful.Color
	Alpha float64 // 0 transparent, 1 opaque
	Width float64 // stroke width in world units, 0 draws a hairline
}

// Solid returns an opaque hairline paint
func Solid(c colorful.Color) Paint {
	return Paint{Color: c, Alpha: 1}
}

// WithAlpha returns a copy with alpha replaced
func (p Paint) WithAlpha(a float64) Paint {
	p.Alpha = a
	return p
}

// WithWidth returns a copy with stroke width replaced
func (p Paint) WithWidth(w float64) Paint {
	p.Width = w
	return p
}

// Surface is the drawing sink the simulation renders into
// Coordinates are world units; implementations own the mapping to pixels or cells
type Surface interface {
	// Size returns the world extent the surface maps onto its output
	Size() (w, h float64)
	// Clear fills the whole surface with bg
	Clear(bg colorful.Color)
	// Polyline strokes connected points, joining last to first when closed
	Polyline(pts []vmath.Vec2, closed bool, p Paint)
	// FillPolygon fills the polygon using the even-odd rule
	FillPolygon(pts []vmath.Vec2, p Paint)
	// Line strokes a single segment
	Line(a, b vmath.Vec2, p Paint)
	// Circle strokes or fills a circle of radius r
	Circle(center vmath.Vec2, r float64, p Paint, filled bool)
}
