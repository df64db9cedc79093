package engine

import (
	"math"

	"github.com/lixenwraith/tendril/vmath"
)

// MaxGridCells caps the dense grid; sparse outliers coarsen the cells instead of
// allocating a huge grid
const MaxGridCells = 1 << 16

// Entry is one indexed node, identified by its owning path and slot
type Entry struct {
	Pos  vmath.Vec2
	Path *Path
	ID   NodeID
}

// SpatialGrid is a dense 2D bucket grid for radius queries
// Rebuilt wholesale each tick: Clear, Add every node, Build
type SpatialGrid struct {
	Width    int // cells
	Height   int
	CellSize float64

	origin  vmath.Vec2
	staged  []Entry
	entries []Entry // grouped by cell after Build
	starts  []int32 // cell i occupies entries[starts[i]:starts[i+1]]
	cellIdx []int32 // scratch: cell of each staged entry
	cursor  []int32 // scratch: next free slot per cell
}

// NewSpatialGrid creates an empty grid
func NewSpatialGrid() *SpatialGrid {
	return &SpatialGrid{}
}

// Clear drops all staged and built entries, keeping capacity
func (g *SpatialGrid) Clear() {
	g.staged = g.staged[:0]
	g.entries = g.entries[:0]
	g.starts = g.starts[:0]
	g.Width, g.Height = 0, 0
}

// Add stages an entry; non-finite positions are not indexed
// Returns false if the position was rejected
func (g *SpatialGrid) Add(pos vmath.Vec2, p *Path, id NodeID) bool {
	if !pos.IsFinite() {
		return false
	}
	g.staged = append(g.staged, Entry{Pos: pos, Path: p, ID: id})
	return true
}

// Build sizes the grid to the staged entries and buckets them
// cellSize should be the largest query radius; it is doubled until the grid fits MaxGridCells
func (g *SpatialGrid) Build(cellSize float64) {
	n := len(g.staged)
	g.entries = g.entries[:0]
	if n == 0 {
		g.Width, g.Height = 0, 0
		g.starts = g.starts[:0]
		return
	}
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}

	min, max := g.staged[0].Pos, g.staged[0].Pos
	for _, e := range g.staged[1:] {
		min.X = math.Min(min.X, e.Pos.X)
		min.Y = math.Min(min.Y, e.Pos.Y)
		max.X = math.Max(max.X, e.Pos.X)
		max.Y = math.Max(max.Y, e.Pos.Y)
	}

	fw := math.Floor((max.X-min.X)/cellSize) + 1
	fh := math.Floor((max.Y-min.Y)/cellSize) + 1
	for fw*fh > MaxGridCells {
		cellSize *= 2
		fw = math.Floor((max.X-min.X)/cellSize) + 1
		fh = math.Floor((max.Y-min.Y)/cellSize) + 1
	}

	g.origin = min
	g.CellSize = cellSize
	g.Width, g.Height = int(fw), int(fh)
	cells := g.Width * g.Height

	// Counting sort by cell
	g.starts = resizeInt32(g.starts, cells+1)
	for i := range g.starts {
		g.starts[i] = 0
	}
	g.cellIdx = resizeInt32(g.cellIdx, n)
	for i, e := range g.staged {
		cx, cy := g.cellOf(e.Pos)
		c := int32(cy*g.Width + cx)
		g.cellIdx[i] = c
		g.starts[c+1]++
	}
	for i := 1; i <= cells; i++ {
		g.starts[i] += g.starts[i-1]
	}

	if cap(g.entries) < n {
		g.entries = make([]Entry, n)
	} else {
		g.entries = g.entries[:n]
	}
	g.cursor = resizeInt32(g.cursor, cells)
	copy(g.cursor, g.starts[:cells])
	for i, e := range g.staged {
		c := g.cellIdx[i]
		g.entries[g.cursor[c]] = e
		g.cursor[c]++
	}
}

// Len returns the number of built entries
func (g *SpatialGrid) Len() int {
	return len(g.entries)
}

// cellOf maps a position to clamped cell coordinates
func (g *SpatialGrid) cellOf(p vmath.Vec2) (int, int) {
	cx := int((p.X - g.origin.X) / g.CellSize)
	cy := int((p.Y - g.origin.Y) / g.CellSize)
	return clampInt(cx, 0, g.Width-1), clampInt(cy, 0, g.Height-1)
}

// GetAllAt returns a slice view of entries in cell (cx, cy)
// INTERNAL USE ONLY - callers must not modify
func (g *SpatialGrid) GetAllAt(cx, cy int) []Entry {
	if cx < 0 || cx >= g.Width || cy < 0 || cy >= g.Height {
		return nil
	}
	c := cy*g.Width + cx
	return g.entries[g.starts[c]:g.starts[c+1]]
}

// Query visits every entry within radius of center, boundary inclusive
func (g *SpatialGrid) Query(center vmath.Vec2, radius float64, fn func(Entry)) {
	if g.Width == 0 || radius < 0 || math.IsNaN(radius) || !center.IsFinite() {
		return
	}

	x0, x1, okX := cellSpan(center.X-radius-g.origin.X, center.X+radius-g.origin.X, g.CellSize, g.Width)
	y0, y1, okY := cellSpan(center.Y-radius-g.origin.Y, center.Y+radius-g.origin.Y, g.CellSize, g.Height)
	if !okX || !okY {
		return
	}

	r2 := radius * radius
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, e := range g.GetAllAt(cx, cy) {
				if e.Pos.DistSq(center) <= r2 {
					fn(e)
				}
			}
		}
	}
}

// cellSpan converts an offset range to clamped cell indices
// Works in float space so infinite ranges never overflow int conversion
func cellSpan(lo, hi, cellSize float64, n int) (int, int, bool) {
	flo := math.Floor(lo / cellSize)
	fhi := math.Floor(hi / cellSize)
	if fhi < 0 || flo > float64(n-1) {
		return 0, 0, false
	}
	flo = math.Max(flo, 0)
	fhi = math.Min(fhi, float64(n-1))
	return int(flo), int(fhi), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func resizeInt32(s []int32, n int) []int32 {
	if cap(s) < n {
		return make([]int32, n)
	}
	return s[:n]
}
