package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tendril/vmath"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(10, 5, 20, 20)

	if c.Cols() != 10 || c.Rows() != 5 {
		t.Errorf("Expected 10x5 cells, got %dx%d", c.Cols(), c.Rows())
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if r := c.Rune(col, row); r != ' ' {
				t.Errorf("Expected empty cell at (%d, %d), got %q", col, row, r)
			}
		}
	}
	if _, ok := c.GetCell(10, 0); ok {
		t.Error("Expected out of range cell lookup to fail")
	}
}

func TestCanvasLine(t *testing.T) {
	// 10x5 cells = 20x20 dots, world 20x20 maps 1:1
	c := NewCanvas(10, 5, 20, 20)
	c.Line(vmath.V(0, 0), vmath.V(19, 0), Solid(White))

	if got := c.DotCount(); got != 20 {
		t.Errorf("Expected 20 lit dots, got %d", got)
	}
	// Top row of both dot columns in every cell of row 0
	for col := 0; col < 10; col++ {
		cell, _ := c.GetCell(col, 0)
		if cell.Dots != 0x09 {
			t.Errorf("Cell %d: expected dots 0x09, got %#x", col, cell.Dots)
		}
	}
	if r := c.Rune(0, 0); r != rune(0x2809) {
		t.Errorf("Expected braille rune U+2809, got %U", r)
	}
}

func TestCanvasLineClipsFarCoordinates(t *testing.T) {
	c := NewCanvas(10, 5, 20, 20)
	c.Line(vmath.V(-1e9, 5), vmath.V(1e9, 5), Solid(White))

	if got := c.DotCount(); got != 20 {
		t.Errorf("Expected clipped line to light one full row (20 dots), got %d", got)
	}

	c.Clear(Black)
	c.Line(vmath.V(-100, -100), vmath.V(-50, -50), Solid(White))
	if got := c.DotCount(); got != 0 {
		t.Errorf("Expected off-canvas line to light nothing, got %d", got)
	}

	c.Line(vmath.V(math.NaN(), 0), vmath.V(1, 1), Solid(White))
	if got := c.DotCount(); got != 0 {
		t.Errorf("Expected NaN line to be skipped, got %d", got)
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(10, 5, 20, 20)
	square := []vmath.Vec2{vmath.V(0, 0), vmath.V(20, 0), vmath.V(20, 20), vmath.V(0, 20)}
	c.FillPolygon(square, Solid(White))

	if got := c.DotCount(); got != 400 {
		t.Errorf("Expected full fill of 400 dots, got %d", got)
	}
	if r := c.Rune(3, 3); r != rune(0x28FF) {
		t.Errorf("Expected full braille cell, got %U", r)
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(10, 5, 20, 20)
	c.Circle(vmath.V(10, 10), 0.2, Solid(White), false)
	if got := c.DotCount(); got != 1 {
		t.Errorf("Expected sub-dot circle to light one dot, got %d", got)
	}

	c.Clear(Black)
	c.Circle(vmath.V(10, 10), 5, Solid(White), true)
	outline := NewCanvas(10, 5, 20, 20)
	outline.Circle(vmath.V(10, 10), 5, Solid(White), false)
	if c.DotCount() <= outline.DotCount() {
		t.Errorf("Expected filled circle (%d) to light more dots than outline (%d)", c.DotCount(), outline.DotCount())
	}
}

func TestCanvasCircleClipsToRaster(t *testing.T) {
	c := NewCanvas(10, 5, 20, 20)
	c.Circle(vmath.V(10, 10), 1e12, Solid(White), true)
	if got := c.DotCount(); got != 400 {
		t.Errorf("Expected huge filled circle to cover all 400 dots, got %d", got)
	}

	c.Clear(Black)
	c.Circle(vmath.V(10, 10), 1e12, Solid(White), false)
	if got := c.DotCount(); got != 0 {
		t.Errorf("Expected enclosing outline to light nothing, got %d", got)
	}

	c.Circle(vmath.V(-500, -500), 50, Solid(White), true)
	if got := c.DotCount(); got != 0 {
		t.Errorf("Expected off-canvas circle to light nothing, got %d", got)
	}

	c.Circle(vmath.V(10, 10), math.Inf(1), Solid(White), true)
	if got := c.DotCount(); got != 0 {
		t.Errorf("Expected infinite radius to be skipped, got %d", got)
	}
}

func TestPNGStrokeWidth(t *testing.T) {
	lit := func(p Paint) int {
		s := NewPNGSurface(20, 20, 2)
		s.Clear(Black)
		s.Line(vmath.V(2, 10), vmath.V(18, 10), p)
		img := s.Image()
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if r, _, _, _ := img.At(x, y).RGBA(); r > 0 {
					n++
				}
			}
		}
		return n
	}

	hair := lit(Solid(White))
	wide := lit(Solid(White).WithWidth(4))
	if hair == 0 {
		t.Fatal("Expected hairline to light pixels")
	}
	if wide <= 2*hair {
		t.Errorf("Expected 4-unit stroke to cover far more than hairline (%d), got %d", hair, wide)
	}
}

func TestCanvasAlphaBlend(t *testing.T) {
	c := NewCanvas(1, 1, 2, 4)
	c.Clear(Black)
	c.Line(vmath.V(0, 0), vmath.V(0, 0), Solid(White).WithAlpha(0.5))

	cell, _ := c.GetCell(0, 0)
	if math.Abs(cell.Color.R-0.5) > 0.01 {
		t.Errorf("Expected half blended red channel, got %f", cell.Color.R)
	}
}

func TestCanvasAspectFit(t *testing.T) {
	// 40x20 dots for a square world: scale limited by height, centered horizontally
	c := NewCanvas(20, 5, 10, 10)
	c.Line(vmath.V(0, 0), vmath.V(0, 0), Solid(White))

	cell, _ := c.GetCell(5, 0)
	if cell.Dots == 0 {
		t.Error("Expected world origin to map into centered column 5")
	}
}

func TestCanvasFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)

	c := NewCanvas(10, 5, 20, 20)
	c.Line(vmath.V(0, 0), vmath.V(19, 0), Solid(White))
	c.Flush(screen)
	screen.Show()

	cells, w, _ := screen.GetContents()
	if w != 10 {
		t.Fatalf("Expected width 10, got %d", w)
	}
	if len(cells[0].Runes) == 0 || cells[0].Runes[0] != rune(0x2809) {
		t.Errorf("Expected braille rune in first cell, got %v", cells[0].Runes)
	}
	if len(cells[10].Runes) > 0 && cells[10].Runes[0] != ' ' {
		t.Errorf("Expected second row to be blank, got %v", cells[10].Runes)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected pure red, got %v", c)
	}

	short, err := ParseHex("#0f0")
	if err != nil {
		t.Fatalf("ParseHex short form failed: %v", err)
	}
	if short.G != 1 {
		t.Errorf("Expected pure green from short form, got %v", short)
	}

	if _, err := ParseHex("red"); err == nil {
		t.Error("Expected error for non-hex colour")
	}
}

func TestBlendEndpoints(t *testing.T) {
	if got := Blend(Black, White, 0); got != Black {
		t.Errorf("Expected dst at alpha 0, got %v", got)
	}
	if got := Blend(Black, White, 1); got != White {
		t.Errorf("Expected src at alpha 1, got %v", got)
	}
}

func TestGradientDistinct(t *testing.T) {
	first := Gradient(0, 10)
	last := Gradient(9, 10)
	if first.Hex() == last.Hex() {
		t.Error("Expected gradient endpoints to differ")
	}
}

func TestPNGSurface(t *testing.T) {
	s := NewPNGSurface(10, 10, 2)
	s.Clear(Black)
	s.FillPolygon([]vmath.Vec2{vmath.V(0, 0), vmath.V(10, 0), vmath.V(10, 10), vmath.V(0, 10)}, Solid(White))

	img := s.Image()
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("Expected 20x20 image, got %v", b)
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r < 0xf000 || g < 0xf000 || b < 0xf000 {
		t.Errorf("Expected white pixel in filled area, got %x %x %x", r, g, b)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected PNG file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty PNG file")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	pts := []vmath.Vec2{vmath.V(0, 0), vmath.V(1, 1)}
	r.Polyline(pts, false, Solid(White))
	pts[0] = vmath.V(9, 9)

	if r.Count(OpPolyline) != 1 {
		t.Fatalf("Expected one polyline op")
	}
	if r.Ops[0].Points[0] != vmath.V(0, 0) {
		t.Error("Expected recorder to keep a private copy of points")
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Error("Expected Reset to drop ops")
	}
}
