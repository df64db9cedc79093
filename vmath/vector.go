package vmath

import "math"

// Vec2 is an immutable 2D point or displacement in world units
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale multiplies both components by s
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns a.X*b.X + a.Y*b.Y
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the z component of the 3D cross product
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Len returns the Euclidean length
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// LenSq returns squared length without sqrt
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }

// Dist returns the Euclidean distance between a and b
func (a Vec2) Dist(b Vec2) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// DistSq returns squared distance, used for radius tests
func (a Vec2) DistSq(b Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// IsFinite reports whether both components are finite numbers
func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Lerp interpolates from a toward b by t
// Negative t moves away from b
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Mid returns the midpoint of a and b
func Mid(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// TurnAngle returns the absolute direction change at cur, in [0, π]
// Straight continuation is 0, full reversal is π. Zero-length edges return 0
func TurnAngle(prev, cur, next Vec2) float64 {
	in := cur.Sub(prev)
	out := next.Sub(cur)
	if in.LenSq() == 0 || out.LenSq() == 0 {
		return 0
	}
	return math.Abs(math.Atan2(in.Cross(out), in.Dot(out)))
}

// Polar returns the point at distance r and angle theta (radians) from center
func Polar(center Vec2, r, theta float64) Vec2 {
	return Vec2{
		X: center.X + r*math.Cos(theta),
		Y: center.Y + r*math.Sin(theta),
	}
}
