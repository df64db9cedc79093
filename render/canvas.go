package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/vmath"
)

// Braille cells give each terminal cell a 2x4 dot matrix
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
	brailleBase  = 0x2800

	maxCircleSteps = 1 << 20
)

// brailleBits maps [row][col] within a cell to the Unicode braille bit
var brailleBits = [DotsPerCellY][DotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell represents a single terminal cell of the canvas
type Cell struct {
	Dots  uint8 // braille bitmask, 0 when empty
	Color colorful.Color
}

// Canvas is a braille-dot raster implementing Surface for terminal output
// World coordinates are scaled uniformly to fit and centered
type Canvas struct {
	cols, rows     int
	worldW, worldH float64

	scale      float64 // dots per world unit
	offX, offY float64 // dot offset for centering

	bg    colorful.Color
	cells []Cell // 1D array: index = row*cols + col
	dirty []bool
}

// NewCanvas creates a canvas of cols x rows terminal cells mapping a worldW x worldH area
func NewCanvas(cols, rows int, worldW, worldH float64) *Canvas {
	c := &Canvas{
		worldW: worldW,
		worldH: worldH,
		bg:     Black,
	}
	c.Resize(cols, rows)
	return c
}

// Resize resizes the canvas, clearing all data
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols = cols
	c.rows = rows
	c.cells = make([]Cell, cols*rows)
	c.dirty = make([]bool, cols*rows)
	c.updateTransform()
	c.markAllDirty()
}

// SetWorld changes the mapped world extent
func (c *Canvas) SetWorld(w, h float64) {
	c.worldW = w
	c.worldH = h
	c.updateTransform()
}

func (c *Canvas) updateTransform() {
	dotsW := float64(c.cols * DotsPerCellX)
	dotsH := float64(c.rows * DotsPerCellY)
	if c.worldW <= 0 || c.worldH <= 0 || dotsW == 0 || dotsH == 0 {
		c.scale = 0
		c.offX, c.offY = 0, 0
		return
	}
	c.scale = math.Min(dotsW/c.worldW, dotsH/c.worldH)
	c.offX = (dotsW - c.worldW*c.scale) / 2
	c.offY = (dotsH - c.worldH*c.scale) / 2
}

// Cols returns the canvas width in cells
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in cells
func (c *Canvas) Rows() int { return c.rows }

// Size returns the mapped world extent
func (c *Canvas) Size() (float64, float64) { return c.worldW, c.worldH }

// Clear empties every cell and sets the background colour
func (c *Canvas) Clear(bg colorful.Color) {
	c.bg = bg
	for i := range c.cells {
		c.cells[i] = Cell{}
	}
	c.markAllDirty()
}

// GetCell returns the cell at the given position
func (c *Canvas) GetCell(col, row int) (Cell, bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Cell{}, false
	}
	return c.cells[row*c.cols+col], true
}

// Rune returns the braille glyph for a cell, space when empty
func (c *Canvas) Rune(col, row int) rune {
	cell, ok := c.GetCell(col, row)
	if !ok || cell.Dots == 0 {
		return ' '
	}
	return rune(brailleBase + int(cell.Dots))
}

// DotCount returns the number of lit dots, used by tests and diagnostics
func (c *Canvas) DotCount() int {
	n := 0
	for _, cell := range c.cells {
		for d := cell.Dots; d != 0; d &= d - 1 {
			n++
		}
	}
	return n
}

// toDot maps a world point to fractional dot coordinates
func (c *Canvas) toDot(p vmath.Vec2) (float64, float64) {
	return p.X*c.scale + c.offX, p.Y*c.scale + c.offY
}

// plot lights a single dot and blends the paint into its cell
func (c *Canvas) plot(x, y int, p Paint) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/DotsPerCellX, y/DotsPerCellY
	if col >= c.cols || row >= c.rows {
		return
	}

	idx := row*c.cols + col
	cell := &c.cells[idx] // Get pointer to avoid copy

	base := cell.Color
	if cell.Dots == 0 {
		base = c.bg
	}
	cell.Dots |= brailleBits[y%DotsPerCellY][x%DotsPerCellX]
	cell.Color = Blend(base, p.Color, p.Alpha)
	c.dirty[idx] = true
}

// Line strokes a segment with Bresenham stepping in dot space
func (c *Canvas) Line(a, b vmath.Vec2, p Paint) {
	if c.scale == 0 || !a.IsFinite() || !b.IsFinite() {
		return
	}
	x0, y0 := c.toDot(a)
	x1, y1 := c.toDot(b)

	var ok bool
	x0, y0, x1, y1, ok = c.clip(x0, y0, x1, y1)
	if !ok {
		return
	}

	ix0, iy0 := int(math.Floor(x0)), int(math.Floor(y0))
	ix1, iy1 := int(math.Floor(x1)), int(math.Floor(y1))

	dx := absInt(ix1 - ix0)
	dy := -absInt(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.plot(ix0, iy0, p)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ix0 += sx
		}
		if e2 <= dx {
			e += dx
			iy0 += sy
		}
	}
}

// clip trims a dot-space segment to the raster rectangle (Liang-Barsky)
func (c *Canvas) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	maxX := float64(c.cols*DotsPerCellX) - 1e-9
	maxY := float64(c.rows*DotsPerCellY) - 1e-9
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		pp, q := e[0], e[1]
		if pp == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / pp
		if pp < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// Polyline strokes connected points
func (c *Canvas) Polyline(pts []vmath.Vec2, closed bool, p Paint) {
	if len(pts) == 1 {
		c.Line(pts[0], pts[0], p)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], p)
	}
	if closed && len(pts) > 2 {
		c.Line(pts[len(pts)-1], pts[0], p)
	}
}

// FillPolygon scan-converts the polygon at dot resolution, even-odd rule
func (c *Canvas) FillPolygon(pts []vmath.Vec2, p Paint) {
	if c.scale == 0 || len(pts) < 3 {
		return
	}

	dots := make([][2]float64, len(pts))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, pt := range pts {
		if !pt.IsFinite() {
			return
		}
		x, y := c.toDot(pt)
		dots[i] = [2]float64{x, y}
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	rowStart := max(0, int(math.Floor(minY)))
	rowEnd := min(c.rows*DotsPerCellY-1, int(math.Ceil(maxY)))
	xs := make([]float64, 0, 8)

	for y := rowStart; y <= rowEnd; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		j := len(dots) - 1
		for i := range dots {
			a, b := dots[i], dots[j]
			if (a[1] > sy) != (b[1] > sy) {
				xs = append(xs, a[0]+(sy-a[1])*(b[0]-a[0])/(b[1]-a[1]))
			}
			j = i
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			from := max(0, int(math.Ceil(xs[k]-0.5)))
			to := min(c.cols*DotsPerCellX-1, int(math.Floor(xs[k+1]-0.5)))
			for x := from; x <= to; x++ {
				c.plot(x, y, p)
			}
		}
	}
}

// Circle strokes or fills a circle
// Radii below one dot collapse to a single dot
func (c *Canvas) Circle(center vmath.Vec2, r float64, p Paint, filled bool) {
	if c.scale == 0 || !center.IsFinite() || math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	cx, cy := c.toDot(center)
	rd := r * c.scale
	if rd < 1 {
		c.plot(int(math.Floor(cx)), int(math.Floor(cy)), p)
		return
	}

	dotsW := float64(c.cols * DotsPerCellX)
	dotsH := float64(c.rows * DotsPerCellY)
	if cx+rd < 0 || cx-rd >= dotsW || cy+rd < 0 || cy-rd >= dotsH {
		return
	}

	if filled {
		// Only rows and columns on the raster are visited
		y0 := int(math.Max(0, math.Floor(cy-rd)))
		y1 := int(math.Min(dotsH-1, math.Floor(cy+rd)))
		for y := y0; y <= y1; y++ {
			dy := float64(y) + 0.5 - cy
			if dy < -rd || dy > rd {
				continue
			}
			half := math.Sqrt(rd*rd - dy*dy)
			x0 := int(math.Max(0, math.Floor(cx-half)))
			x1 := int(math.Min(dotsW-1, math.Floor(cx+half)))
			for x := x0; x <= x1; x++ {
				c.plot(x, y, p)
			}
		}
		return
	}

	// An outline enclosing the whole raster lights nothing
	fx := math.Max(math.Abs(cx), math.Abs(cx-dotsW))
	fy := math.Max(math.Abs(cy), math.Abs(cy-dotsH))
	if fx*fx+fy*fy < rd*rd {
		return
	}
	steps := min(maxCircleSteps, max(8, int(2*math.Pi*rd)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.plot(int(math.Floor(cx+rd*math.Cos(a))), int(math.Floor(cy+rd*math.Sin(a))), p)
	}
}

// Flush writes dirty cells to the screen; the caller invokes Show
func (c *Canvas) Flush(screen tcell.Screen) {
	bgStyle := tcell.StyleDefault.Background(ToTcell(c.bg))
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			idx := row*c.cols + col
			if !c.dirty[idx] {
				continue
			}
			cell := c.cells[idx]
			if cell.Dots == 0 {
				screen.SetContent(col, row, ' ', nil, bgStyle)
			} else {
				screen.SetContent(col, row, rune(brailleBase+int(cell.Dots)), nil, bgStyle.Foreground(ToTcell(cell.Color)))
			}
			c.dirty[idx] = false
		}
	}
}

func (c *Canvas) markAllDirty() {
	for i := range c.dirty {
		c.dirty[i] = true
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
