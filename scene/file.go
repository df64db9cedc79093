package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/vmath"
)

// Scene file units
const (
	UnitsWorld    = "world"    // coordinates are world units
	UnitsRelative = "relative" // coordinates are fractions of the world, radii of its short side
)

// yamlScene is the on-disk scene description
type yamlScene struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Units       string     `yaml:"units,omitempty"`
	Paths       []yamlPath `yaml:"paths"`
}

type yamlPath struct {
	yamlShape `yaml:",inline"`

	Name   string     `yaml:"name,omitempty"`
	Closed *bool      `yaml:"closed,omitempty"`
	Bounds *yamlShape `yaml:"bounds,omitempty"`

	MinDistance     *float64 `yaml:"min_distance,omitempty"`
	MaxDistance     *float64 `yaml:"max_distance,omitempty"`
	RepulsionRadius *float64 `yaml:"repulsion_radius,omitempty"`
}

// yamlShape is either explicit points or a generator with its parameters
// Angles are degrees
type yamlShape struct {
	Shape  string       `yaml:"shape,omitempty"`
	Points [][2]float64 `yaml:"points,omitempty"`

	Center      [2]float64 `yaml:"center,omitempty"`
	Radius      float64    `yaml:"radius,omitempty"`
	InnerRadius float64    `yaml:"inner_radius,omitempty"`
	From        [2]float64 `yaml:"from,omitempty"`
	To          [2]float64 `yaml:"to,omitempty"`
	Start       float64    `yaml:"start,omitempty"`
	Sweep       float64    `yaml:"sweep,omitempty"`
	Sides       int        `yaml:"sides,omitempty"`
	Phase       float64    `yaml:"phase,omitempty"`
	Turns       float64    `yaml:"turns,omitempty"`
}

// Parse decodes a YAML scene into a layout
// Unknown fields and shapes are rejected at parse time
func Parse(r io.Reader) (Layout, error) {
	var ys yamlScene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ys); err != nil {
		if errors.Is(err, io.EOF) {
			return Layout{}, errors.New("failed to parse YAML: empty scene")
		}
		return Layout{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	switch ys.Units {
	case "", UnitsWorld, UnitsRelative:
	default:
		return Layout{}, fmt.Errorf("scene %s: units %q must be %s or %s", ys.Name, ys.Units, UnitsWorld, UnitsRelative)
	}
	if len(ys.Paths) == 0 {
		return Layout{}, fmt.Errorf("scene %s: no paths", ys.Name)
	}
	for i := range ys.Paths {
		yp := &ys.Paths[i]
		if err := yp.yamlShape.validate(); err != nil {
			return Layout{}, fmt.Errorf("scene %s path %d: %w", ys.Name, i, err)
		}
		if yp.Bounds != nil {
			if err := yp.Bounds.validate(); err != nil {
				return Layout{}, fmt.Errorf("scene %s path %d bounds: %w", ys.Name, i, err)
			}
		}
	}

	name := ys.Name
	if name == "" {
		name = "scene"
	}
	return Layout{
		Name:        name,
		Description: ys.Description,
		Build:       ys.build,
	}, nil
}

// Load reads a YAML scene file
func Load(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// build instantiates the scene for a world size
func (ys yamlScene) build(ctx BuildContext) ([]*engine.Path, error) {
	xf := identity
	if ys.Units == UnitsRelative {
		xf = relativeTo(ctx)
	}

	paths := make([]*engine.Path, 0, len(ys.Paths))
	for i, yp := range ys.Paths {
		local := ctx
		if yp.MinDistance != nil {
			local.Settings.MinDistance = *yp.MinDistance
		}
		if yp.MaxDistance != nil {
			local.Settings.MaxDistance = *yp.MaxDistance
		}
		if yp.RepulsionRadius != nil {
			local.Settings.RepulsionRadius = *yp.RepulsionRadius
		}

		pts, closed := yp.yamlShape.points(xf, local.spacing())
		if yp.Closed != nil {
			closed = *yp.Closed
		}
		name := yp.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", ys.Name, i)
		}
		p, err := newPath(local, name, pts, closed)
		if err != nil {
			return nil, err
		}

		if yp.Bounds != nil {
			verts, _ := yp.Bounds.points(xf, local.spacing())
			b, err := engine.NewBounds(verts)
			if err != nil {
				return nil, fmt.Errorf("path %s bounds: %w", name, err)
			}
			p.SetBounds(b)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// transform maps scene coordinates and lengths to world units
type transform struct {
	point  func([2]float64) vmath.Vec2
	length func(float64) float64
}

var identity = transform{
	point:  func(p [2]float64) vmath.Vec2 { return vmath.V(p[0], p[1]) },
	length: func(l float64) float64 { return l },
}

func relativeTo(ctx BuildContext) transform {
	return transform{
		point:  func(p [2]float64) vmath.Vec2 { return vmath.V(p[0]*ctx.Width, p[1]*ctx.Height) },
		length: func(l float64) float64 { return l * ctx.short() },
	}
}

func (s yamlShape) kind() string {
	if s.Shape == "" && len(s.Points) > 0 {
		return "points"
	}
	return strings.ToLower(s.Shape)
}

func (s yamlShape) validate() error {
	switch s.kind() {
	case "points":
		if len(s.Points) == 0 {
			return errors.New("points: empty")
		}
	case "circle", "arc", "spiral":
		if !(s.Radius > 0) {
			return fmt.Errorf("%s: radius must be positive", s.kind())
		}
	case "polygon":
		if !(s.Radius > 0) || s.Sides < 3 {
			return errors.New("polygon: needs positive radius and at least 3 sides")
		}
	case "line":
		if s.From == s.To {
			return errors.New("line: from and to coincide")
		}
	default:
		return fmt.Errorf("%q: %w", s.Shape, ErrUnknownShape)
	}
	return nil
}

// points generates vertices and the shape's default closed flag
func (s yamlShape) points(xf transform, spacing float64) ([]vmath.Vec2, bool) {
	c := xf.point(s.Center)
	r := xf.length(s.Radius)
	deg := math.Pi / 180

	switch s.kind() {
	case "circle":
		return Circle(c, r, spacing), true
	case "polygon":
		return vmath.RegularPolygon(c, r, s.Sides, s.Phase*deg), true
	case "arc":
		sweep := s.Sweep
		if sweep == 0 {
			sweep = 180
		}
		return Arc(c, r, s.Start*deg, sweep*deg, spacing), false
	case "spiral":
		turns := s.Turns
		if turns == 0 {
			turns = 3
		}
		return Spiral(c, xf.length(s.InnerRadius), r, turns, spacing), false
	case "line":
		return Line(xf.point(s.From), xf.point(s.To), spacing), false
	default:
		pts := make([]vmath.Vec2, len(s.Points))
		for i, p := range s.Points {
			pts[i] = xf.point(p)
		}
		return pts, false
	}
}
