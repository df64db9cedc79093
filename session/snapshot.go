package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/tendril/render"
)

// snapshotTimeFormat keeps file names sortable
const snapshotTimeFormat = "20060102-150405.000"

// Snapshot renders the current frame to a PNG in the snapshot directory
// Always paints the background so trace mode leftovers on screen do not matter
func (s *Session) Snapshot() (string, error) {
	dir := s.snapshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}

	name := fmt.Sprintf("tendril-%s-%s.png", s.Layout().Name, s.clock.RealTime().Format(snapshotTimeFormat))
	path := filepath.Join(dir, name)

	surface := s.Render(s.snapshotScale)
	if err := surface.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

// Render draws the current frame onto a fresh PNG surface
func (s *Session) Render(scale float64) *render.PNGSurface {
	if !(scale > 0) {
		scale = 1
	}
	surface := render.NewPNGSurface(s.width, s.height, scale)

	d := s.world.Display()
	surface.Clear(s.world.Palette().BackgroundFor(d.Inverted))
	for _, p := range s.world.Paths() {
		p.Draw(surface)
	}
	return surface
}
