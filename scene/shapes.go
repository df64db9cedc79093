package scene

import (
	"math"

	"github.com/lixenwraith/tendril/vmath"
)

// segments returns how many pieces a curve of length l needs at the given spacing
func segments(l, spacing float64) int {
	if !(spacing > 0) || !(l > 0) || math.IsInf(l, 0) {
		return 1
	}
	return max(1, int(math.Ceil(l/spacing)))
}

// Line returns points from a to b, spacing apart or closer, endpoints included
func Line(a, b vmath.Vec2, spacing float64) []vmath.Vec2 {
	n := segments(a.Dist(b), spacing)
	pts := make([]vmath.Vec2, n+1)
	for i := range pts {
		pts[i] = vmath.Lerp(a, b, float64(i)/float64(n))
	}
	return pts
}

// Circle returns a closed ring of at least 3 points, no duplicate closing point
func Circle(center vmath.Vec2, r, spacing float64) []vmath.Vec2 {
	n := max(3, segments(2*math.Pi*r, spacing))
	return vmath.RegularPolygon(center, r, n, 0)
}

// Arc returns an open arc from angle start sweeping by sweep radians
func Arc(center vmath.Vec2, r, start, sweep, spacing float64) []vmath.Vec2 {
	n := segments(math.Abs(sweep)*r, spacing)
	pts := make([]vmath.Vec2, n+1)
	for i := range pts {
		pts[i] = vmath.Polar(center, r, start+sweep*float64(i)/float64(n))
	}
	return pts
}

// Spiral returns an open Archimedean spiral from radius r0 to r1 over turns revolutions
func Spiral(center vmath.Vec2, r0, r1, turns, spacing float64) []vmath.Vec2 {
	sweep := 2 * math.Pi * turns
	// Upper bound on the per-step chord: angular travel at the outer radius plus radial growth
	bound := math.Abs(sweep)*math.Max(r0, r1) + math.Abs(r1-r0)
	n := max(2, segments(bound, spacing))
	pts := make([]vmath.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = vmath.Polar(center, r0+(r1-r0)*t, sweep*t)
	}
	return pts
}
