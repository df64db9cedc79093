package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Predefined colors
var (
	Black = colorful.Color{R: 0, G: 0, B: 0}
	White = colorful.Color{R: 1, G: 1, B: 1}
)

// ParseHex parses "#rrggbb" or "#rgb"
func ParseHex(s string) (colorful.Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for compile-time constants, panics on malformed input
func MustHex(s string) colorful.Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func Blend(dst, src colorful.Color, alpha float64) colorful.Color {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	return dst.BlendRgb(src, alpha).Clamped()
}

// Gradient returns the hue for position i of n along a path
// Used for per-segment debug colouring
func Gradient(i, n int) colorful.Color {
	if n <= 1 {
		return colorful.Hsv(0, 0.8, 0.95)
	}
	h := 300 * float64(i) / float64(n-1)
	return colorful.Hsv(math.Mod(h, 360), 0.8, 0.95)
}

// ToTcell converts to a 24-bit tcell color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
