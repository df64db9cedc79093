package vmath

import "math"

// PointInPolygon tests containment with the even-odd rule
// Polygons with fewer than 3 vertices contain nothing
func PointInPolygon(p Vec2, poly []Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		// Edge straddles the horizontal ray through p
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// BoundingBox returns the min and max corners of points
// Empty input returns two zero vectors
func BoundingBox(points []Vec2) (min, max Vec2) {
	if len(points) == 0 {
		return Vec2{}, Vec2{}
	}
	min = Vec2{math.Inf(1), math.Inf(1)}
	max = Vec2{math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// RegularPolygon returns n vertices on a circle, starting at angle phase
func RegularPolygon(center Vec2, radius float64, n int, phase float64) []Vec2 {
	if n < 3 {
		return nil
	}
	pts := make([]Vec2, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		pts[i] = Polar(center, radius, phase+step*float64(i))
	}
	return pts
}
