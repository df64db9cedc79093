package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/render"
)

// InjectionMode selects how paths add resolution on the injection interval
type InjectionMode uint8

const (
	InjectRandom InjectionMode = iota
	InjectCurvature
)

func (m InjectionMode) String() string {
	switch m {
	case InjectCurvature:
		return "curvature"
	default:
		return "random"
	}
}

// ParseInjectionMode accepts "random" or "curvature", case-insensitive
func ParseInjectionMode(s string) (InjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return InjectRandom, nil
	case "curvature":
		return InjectCurvature, nil
	}
	return InjectRandom, fmt.Errorf("injection mode %q: %w", s, ErrUnknownMode)
}

// Settings holds the relaxation tunables shared by every node of a path
type Settings struct {
	MinDistance     float64 // attraction threshold and prune distance
	MaxDistance     float64 // split distance
	RepulsionRadius float64

	AttractionForce float64
	RepulsionForce  float64
	AlignmentForce  float64
	StepFraction    float64 // fraction of the way a node moves toward its target per tick

	Jitter      bool
	JitterRange float64

	InjectionInterval  time.Duration
	InjectionMode      InjectionMode
	CurvatureThreshold float64 // radians

	MaxHistory int
}

// DefaultSettings returns the tuned defaults
func DefaultSettings() Settings {
	return Settings{
		MinDistance:        2,
		MaxDistance:        10,
		RepulsionRadius:    10,
		AttractionForce:    0.2,
		RepulsionForce:     0.5,
		AlignmentForce:     0.45,
		StepFraction:       0.1,
		Jitter:             true,
		JitterRange:        0.1,
		InjectionInterval:  100 * time.Millisecond,
		InjectionMode:      InjectRandom,
		CurvatureThreshold: 0.6,
		MaxHistory:         10,
	}
}

// Display holds render toggles, broadcast from World to every Path
type Display struct {
	Trace          bool
	Inverted       bool
	Debug          bool
	ShowNodes      bool
	Fill           bool
	ShowHistory    bool
	DrawBounds     bool
	DrawBackground bool
}

// DefaultDisplay returns the startup toggles
func DefaultDisplay() Display {
	return Display{DrawBackground: true}
}

// Palette holds a path's colour pairs and trace-mode opacity
type Palette struct {
	Background colorful.Color
	Stroke     colorful.Color
	Fill       colorful.Color

	InvertedBackground colorful.Color
	InvertedStroke     colorful.Color
	InvertedFill       colorful.Color

	Bounds colorful.Color
	Node   colorful.Color

	TraceAlpha  float64
	NodeRadius  float64
	StrokeWidth float64 // world units, 0 draws a hairline
}

// DefaultPalette returns light-on-dark colours with a dark-on-light inversion
func DefaultPalette() Palette {
	return Palette{
		Background:         render.MustHex("#000000"),
		Stroke:             render.MustHex("#ffffff"),
		Fill:               render.MustHex("#333333"),
		InvertedBackground: render.MustHex("#ffffff"),
		InvertedStroke:     render.MustHex("#000000"),
		InvertedFill:       render.MustHex("#cccccc"),
		Bounds:             render.MustHex("#555555"),
		Node:               render.MustHex("#ff4455"),
		TraceAlpha:         0.1,
		NodeRadius:         1.5,
	}
}

// BackgroundFor returns the background colour for the given inversion state
func (p Palette) BackgroundFor(inverted bool) colorful.Color {
	if inverted {
		return p.InvertedBackground
	}
	return p.Background
}
