package engine

import (
	"github.com/lixenwraith/tendril/render"
	"github.com/lixenwraith/tendril/vmath"
)

// Draw renders history trails, bounds, edges and node markers in that order
func (p *Path) Draw(s render.Surface) {
	closed := p.wraps()

	if p.display.ShowHistory {
		// Oldest snapshot faintest
		n := p.history.Len()
		p.history.Each(func(i int, snap []vmath.Vec2) {
			a := p.stroke.Alpha * float64(i+1) / float64(n+1)
			s.Polyline(snap, closed, p.stroke.WithAlpha(a))
		})
	}

	if p.display.DrawBounds && p.bounds != nil {
		p.bounds.Draw(s, render.Solid(p.palette.Bounds))
	}

	p.positions = p.nodes.Positions(p.positions[:0])
	pts := p.positions
	if len(pts) == 0 {
		return
	}

	if p.display.Fill && closed {
		s.FillPolygon(pts, p.fill)
	}

	switch {
	case p.display.Debug && len(pts) > 1:
		edges := len(pts) - 1
		if closed {
			edges = len(pts)
		}
		for i := 0; i < edges; i++ {
			paint := render.Paint{Color: render.Gradient(i, edges), Alpha: p.stroke.Alpha}
			s.Line(pts[i], pts[(i+1)%len(pts)], paint)
		}
	default:
		s.Polyline(pts, closed, p.stroke)
	}

	if p.display.ShowNodes {
		marker := render.Solid(p.palette.Node)
		p.nodes.Each(func(_ NodeID, n *Node) {
			// Fixed nodes are drawn hollow
			s.Circle(n.Pos, p.palette.NodeRadius, marker, !n.fixed)
		})
	}
}
