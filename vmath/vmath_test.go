package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestLerp(t *testing.T) {
	a := V(0, 0)
	b := V(10, -20)

	tests := []struct {
		name string
		t    float64
		want Vec2
	}{
		{"start", 0, V(0, 0)},
		{"end", 1, V(10, -20)},
		{"quarter", 0.25, V(2.5, -5)},
		{"away", -0.5, V(-5, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp(a, b, tt.t)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", a, b, tt.t, got, tt.want)
			}
		})
	}
}

func TestMidAndDist(t *testing.T) {
	m := Mid(V(0, 0), V(0, 30))
	if m != V(0, 15) {
		t.Errorf("Expected midpoint (0,15), got %v", m)
	}
	if d := V(0, 0).Dist(V(3, 4)); !near(d, 5) {
		t.Errorf("Expected distance 5, got %f", d)
	}
	if d := V(1, 1).DistSq(V(4, 5)); !near(d, 25) {
		t.Errorf("Expected squared distance 25, got %f", d)
	}
}

func TestTurnAngle(t *testing.T) {
	tests := []struct {
		name            string
		prev, cur, next Vec2
		want            float64
	}{
		{"straight", V(0, 0), V(1, 0), V(2, 0), 0},
		{"right angle", V(0, 0), V(1, 0), V(1, 1), math.Pi / 2},
		{"reversal", V(0, 0), V(1, 0), V(0, 0), math.Pi},
		{"vertical neighbours", V(5, 0), V(5, 1), V(5, 2), 0},
		{"zero edge", V(1, 1), V(1, 1), V(2, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TurnAngle(tt.prev, tt.cur, tt.next)
			if !near(got, tt.want) {
				t.Errorf("TurnAngle = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Vec2{V(0, 0), V(10, 0), V(10, 10), V(0, 10)}
	// Concave "C" shape, notch on the right side
	notch := []Vec2{V(0, 0), V(10, 0), V(10, 3), V(4, 3), V(4, 7), V(10, 7), V(10, 10), V(0, 10)}

	tests := []struct {
		name string
		poly []Vec2
		p    Vec2
		want bool
	}{
		{"center", square, V(5, 5), true},
		{"outside right", square, V(11, 5), false},
		{"outside above", square, V(5, -1), false},
		{"notch interior", notch, V(7, 5), false},
		{"notch arm", notch, V(7, 1), true},
		{"degenerate", []Vec2{V(0, 0), V(1, 1)}, V(0.5, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, tt.poly); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	min, max := BoundingBox([]Vec2{V(3, -1), V(-2, 4), V(0, 0)})
	if min != V(-2, -1) || max != V(3, 4) {
		t.Errorf("Unexpected bounding box %v %v", min, max)
	}

	min, max = BoundingBox(nil)
	if min != (Vec2{}) || max != (Vec2{}) {
		t.Errorf("Expected zero box for empty input, got %v %v", min, max)
	}
}

func TestRegularPolygon(t *testing.T) {
	pts := RegularPolygon(V(0, 0), 10, 6, 0)
	if len(pts) != 6 {
		t.Fatalf("Expected 6 vertices, got %d", len(pts))
	}
	for i, p := range pts {
		if !near(p.Len(), 10) {
			t.Errorf("Vertex %d at radius %f, want 10", i, p.Len())
		}
	}
	if RegularPolygon(V(0, 0), 1, 2, 0) != nil {
		t.Error("Expected nil for fewer than 3 sides")
	}
}

func TestFastRandRange(t *testing.T) {
	rng := NewFastRand(42)
	for i := 0; i < 10000; i++ {
		f := rng.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		r := rng.Range(-0.5, 0.5)
		if r < -0.5 || r >= 0.5 {
			t.Fatalf("Range out of bounds: %f", r)
		}
		if n := rng.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn out of bounds: %d", n)
		}
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(7)
	b := NewFastRand(7)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}

	// Zero seed must not lock the generator at zero
	z := NewFastRand(0)
	if z.Next() == 0 {
		t.Error("Expected non-zero output for zero seed")
	}
}
