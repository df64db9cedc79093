package engine

import (
	"fmt"

	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/vmath"
)

// Bounds is an immutable containment polygon
// Paths borrow it; one Bounds may be shared by several paths
type Bounds struct {
	vertices []vmath.Vec2
	min, max vmath.Vec2
}

// NewBounds copies vertices into a new polygon
func NewBounds(vertices []vmath.Vec2) (*Bounds, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%d vertices: %w", len(vertices), ErrDegenerateBounds)
	}
	for i, v := range vertices {
		if !v.IsFinite() {
			return nil, fmt.Errorf("vertex %d %v: %w", i, v, ErrDegenerateBounds)
		}
	}
	vs := make([]vmath.Vec2, len(vertices))
	copy(vs, vertices)
	min, max := vmath.BoundingBox(vs)
	return &Bounds{vertices: vs, min: min, max: max}, nil
}

// Contains tests p against the polygon, even-odd rule
func (b *Bounds) Contains(p vmath.Vec2) bool {
	// Bounding box reject first
	if p.X < b.min.X || p.X > b.max.X || p.Y < b.min.Y || p.Y > b.max.Y {
		return false
	}
	return vmath.PointInPolygon(p, b.vertices)
}

// Draw renders the outline
func (b *Bounds) Draw(s render.Surface, p render.Paint) {
	s.Polyline(b.vertices, true, p)
}
