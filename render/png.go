package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/vmath"
)

// PNGSurface renders into an in-memory image for headless export
type PNGSurface struct {
	dc             *gg.Context
	worldW, worldH float64
	scale          float64 // pixels per world unit
}

// NewPNGSurface creates an image of worldW*scale x worldH*scale pixels
func NewPNGSurface(worldW, worldH, scale float64) *PNGSurface {
	if scale <= 0 {
		scale = 1
	}
	w := max(1, int(worldW*scale))
	h := max(1, int(worldH*scale))
	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	return &PNGSurface{
		dc:     dc,
		worldW: worldW,
		worldH: worldH,
		scale:  scale,
	}
}

func (s *PNGSurface) Size() (float64, float64) { return s.worldW, s.worldH }

func (s *PNGSurface) Clear(bg colorful.Color) {
	s.setColor(Solid(bg))
	s.dc.Clear()
}

func (s *PNGSurface) Polyline(pts []vmath.Vec2, closed bool, p Paint) {
	if len(pts) == 0 {
		return
	}
	s.tracePath(pts, closed && len(pts) > 2)
	s.stroke(p)
}

func (s *PNGSurface) FillPolygon(pts []vmath.Vec2, p Paint) {
	if len(pts) < 3 {
		return
	}
	s.tracePath(pts, true)
	s.setColor(p)
	s.dc.SetFillRuleEvenOdd()
	s.dc.Fill()
}

func (s *PNGSurface) Line(a, b vmath.Vec2, p Paint) {
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.stroke(p)
}

func (s *PNGSurface) Circle(center vmath.Vec2, r float64, p Paint, filled bool) {
	s.dc.DrawCircle(center.X, center.Y, r)
	if filled {
		s.setColor(p)
		s.dc.Fill()
		return
	}
	s.stroke(p)
}

// Image returns the rendered image
func (s *PNGSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the image to path
func (s *PNGSurface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the image to w
func (s *PNGSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *PNGSurface) tracePath(pts []vmath.Vec2, closed bool) {
	s.dc.NewSubPath()
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		s.dc.LineTo(pt.X, pt.Y)
	}
	if closed {
		s.dc.ClosePath()
	}
}

func (s *PNGSurface) stroke(p Paint) {
	w := p.Width
	if w <= 0 {
		// Hairline: one device pixel regardless of scale
		w = 1 / s.scale
	}
	s.dc.SetLineWidth(w * s.scale)
	s.setColor(p)
	s.dc.Stroke()
}

func (s *PNGSurface) setColor(p Paint) {
	c := p.Color.Clamped()
	s.dc.SetRGBA(c.R, c.G, c.B, vmath.Clamp(p.Alpha, 0, 1))
}
