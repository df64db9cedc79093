package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/vmath"
)

var (
	ErrUnknownLayout = errors.New("unknown layout")
	ErrUnknownShape  = errors.New("unknown shape")
	ErrEmptyWorld    = errors.New("world has no area")
)

// BuildContext carries everything a layout needs to place paths
type BuildContext struct {
	Width, Height float64
	Settings      engine.Settings
	Palette       engine.Palette
	Rand          *vmath.FastRand
}

func (c BuildContext) center() vmath.Vec2 {
	return vmath.V(c.Width/2, c.Height/2)
}

func (c BuildContext) short() float64 {
	return math.Min(c.Width, c.Height)
}

func (c BuildContext) rand() *vmath.FastRand {
	if c.Rand == nil {
		return vmath.NewFastRand(1)
	}
	return c.Rand
}

// spacing is the initial node spacing; splitting refines it at runtime
func (c BuildContext) spacing() float64 {
	if c.Settings.MaxDistance > 0 {
		return c.Settings.MaxDistance
	}
	return 10
}

// BuildFunc creates the initial paths of a layout
type BuildFunc func(ctx BuildContext) ([]*engine.Path, error)

// Layout is a named initial arrangement of paths
type Layout struct {
	Name        string
	Description string
	Build       BuildFunc
}

// Paths builds the layout after checking the world has area
func (l Layout) Paths(ctx BuildContext) ([]*engine.Path, error) {
	if !(ctx.Width > 0) || !(ctx.Height > 0) || math.IsInf(ctx.Width, 0) || math.IsInf(ctx.Height, 0) {
		return nil, fmt.Errorf("layout %s: %vx%v: %w", l.Name, ctx.Width, ctx.Height, ErrEmptyWorld)
	}
	return l.Build(ctx)
}

var (
	layoutsMu sync.RWMutex
	layouts   []Layout // registration order is selection order
)

// Register adds a layout, replacing any existing layout with the same name
func Register(l Layout) {
	layoutsMu.Lock()
	defer layoutsMu.Unlock()
	for i := range layouts {
		if layouts[i].Name == l.Name {
			layouts[i] = l
			return
		}
	}
	layouts = append(layouts, l)
}

// Layouts returns registered layouts in selection order
func Layouts() []Layout {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()
	out := make([]Layout, len(layouts))
	copy(out, layouts)
	return out
}

// Names returns registered layout names, sorted
func Names() []string {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	sort.Strings(names)
	return names
}

// Lookup finds a layout by name or by 1-based selection index
func Lookup(key string) (Layout, error) {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()
	for _, l := range layouts {
		if l.Name == key {
			return l, nil
		}
	}
	if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= len(layouts) {
		return layouts[i-1], nil
	}
	return Layout{}, fmt.Errorf("%q: %w", key, ErrUnknownLayout)
}

func init() {
	Register(Layout{Name: "lines", Description: "grid of short vertical segments", Build: buildLines})
	Register(Layout{Name: "arcs", Description: "concentric open arcs", Build: buildArcs})
	Register(Layout{Name: "circle", Description: "single closed ring", Build: buildCircle})
	Register(Layout{Name: "bounded", Description: "ring growing inside a hexagon", Build: buildBounded})
	Register(Layout{Name: "spiral", Description: "open spiral", Build: buildSpiral})
}

// newPath builds a path with the context's settings and palette
func newPath(ctx BuildContext, name string, pts []vmath.Vec2, closed bool) (*engine.Path, error) {
	p, err := engine.NewPath(pts, closed, ctx.Settings)
	if err != nil {
		return nil, fmt.Errorf("path %s: %w", name, err)
	}
	p.Name = name
	p.SetPalette(ctx.Palette)
	return p, nil
}

func buildLines(ctx BuildContext) ([]*engine.Path, error) {
	cols := max(1, int(ctx.Width/(ctx.short()/4)))
	rows := 3
	cw, rh := ctx.Width/float64(cols), ctx.Height/float64(rows)
	rng := ctx.rand()

	paths := make([]*engine.Path, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			// Small horizontal wobble keeps neighbouring segments from being perfectly parallel
			x := cw*(float64(c)+0.5) + rng.Range(-cw/10, cw/10)
			y := rh * (float64(r) + 0.5)
			half := rh / 4
			pts := Line(vmath.V(x, y-half), vmath.V(x, y+half), ctx.spacing())
			p, err := newPath(ctx, fmt.Sprintf("line-%d-%d", r, c), pts, false)
			if err != nil {
				return nil, err
			}
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func buildArcs(ctx BuildContext) ([]*engine.Path, error) {
	const rings = 5
	rng := ctx.rand()
	step := ctx.short() * 0.4 / rings

	paths := make([]*engine.Path, 0, rings)
	for i := 1; i <= rings; i++ {
		start := rng.Angle()
		pts := Arc(ctx.center(), step*float64(i), start, math.Pi*1.2, ctx.spacing())
		p, err := newPath(ctx, fmt.Sprintf("arc-%d", i), pts, false)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func buildCircle(ctx BuildContext) ([]*engine.Path, error) {
	p, err := newPath(ctx, "circle", Circle(ctx.center(), ctx.short()*0.1, ctx.spacing()), true)
	if err != nil {
		return nil, err
	}
	return []*engine.Path{p}, nil
}

func buildBounded(ctx BuildContext) ([]*engine.Path, error) {
	hex := vmath.RegularPolygon(ctx.center(), ctx.short()*0.45, 6, math.Pi/6)
	b, err := engine.NewBounds(hex)
	if err != nil {
		return nil, err
	}
	p, err := newPath(ctx, "bounded", Circle(ctx.center(), ctx.short()*0.08, ctx.spacing()), true)
	if err != nil {
		return nil, err
	}
	p.SetBounds(b)
	return []*engine.Path{p}, nil
}

func buildSpiral(ctx BuildContext) ([]*engine.Path, error) {
	s := ctx.short()
	pts := Spiral(ctx.center(), s*0.03, s*0.35, 3, ctx.spacing())
	p, err := newPath(ctx, "spiral", pts, false)
	if err != nil {
		return nil, err
	}
	return []*engine.Path{p}, nil
}
