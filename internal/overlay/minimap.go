// Package overlay draws 2D passes on top of a rendered frame.
package overlay

import (
	"gridcaster/internal/canvas"
	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

var (
	borderColor = canvas.RGB(0, 0, 0)
	selfColor   = canvas.RGB(255, 0, 0)
	otherColor  = canvas.RGB(0, 255, 255)
)

var tileColors = map[int]canvas.RGBA{
	maps.Floor: canvas.RGB(40, 40, 40),
	1:          canvas.RGB(255, 255, 255),
	2:          canvas.RGB(0, 255, 0),
	3:          canvas.RGB(0, 0, 255),
	4:          canvas.RGB(255, 255, 0),
	5:          canvas.RGB(255, 0, 255),
}

var unknownTile = canvas.RGB(128, 128, 128)

// TileColor is the minimap color of a tile id.
func TileColor(id int) canvas.RGBA {
	if c, ok := tileColors[id]; ok {
		return c
	}
	return unknownTile
}

// Minimap is a top-down view of the level in the top-right corner.
type Minimap struct {
	Size       int // largest edge of the square box in pixels
	Margin     int // gap to the top and right canvas edges
	FacingLine int // length of the heading tick in pixels
}

// DefaultMinimap returns a box of at most 100px, 10px from the corner.
func DefaultMinimap() Minimap {
	return Minimap{Size: 100, Margin: 10, FacingLine: 6}
}

// BoxSize is the edge of the box on cv: Size, shrunk to a third of the
// width and half of the height so small views stay visible.
func (mm Minimap) BoxSize(cv *canvas.Canvas) int {
	return max(min(mm.Size, cv.Width()/3, cv.Height()/2), 0)
}

// Origin returns the canvas pixel of the box's top-left corner.
func (mm Minimap) Origin(cv *canvas.Canvas) (int, int) {
	return max(cv.Width()-mm.BoxSize(cv)-mm.Margin, 0), mm.Margin
}

// scale is the number of box pixels per map unit; the larger map
// dimension spans the whole box.
func (mm Minimap) scale(cv *canvas.Canvas, m *maps.Map) float64 {
	dim := max(m.Width, m.Height)
	if dim == 0 {
		return 0
	}
	return float64(mm.BoxSize(cv)) / float64(dim)
}

// ToPixel converts a map-space position to the canvas pixel it lands on.
func (mm Minimap) ToPixel(cv *canvas.Canvas, m *maps.Map, p vmath.Vec2) (int, int) {
	ox, oy := mm.Origin(cv)
	s := mm.scale(cv, m)
	return ox + int(p.X*s), oy + int(p.Y*s)
}

// Draw paints the box, the tiles, every other player and finally the viewer
// with a short line toward where they are looking.
func (mm Minimap) Draw(cv *canvas.Canvas, m *maps.Map, self, facing vmath.Vec2, others []vmath.Vec2) {
	size := mm.BoxSize(cv)
	if size <= 0 || m.Width == 0 || m.Height == 0 {
		return
	}
	ox, oy := mm.Origin(cv)
	cv.DrawRect(ox-1, oy-1, size+2, size+2, borderColor)

	s := mm.scale(cv, m)
	for ty := 0; ty < m.Height; ty++ {
		y0 := oy + int(float64(ty)*s)
		y1 := oy + int(float64(ty+1)*s)
		for tx := 0; tx < m.Width; tx++ {
			x0 := ox + int(float64(tx)*s)
			x1 := ox + int(float64(tx+1)*s)
			// keep at least one pixel per tile on tiny boxes
			cv.DrawRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1), TileColor(m.Get(tx, ty)))
		}
	}

	for _, p := range others {
		px, py := mm.ToPixel(cv, m, p)
		cv.DrawRect(px-1, py-1, 2, 2, otherColor)
	}

	px, py := mm.ToPixel(cv, m, self)
	dir := facing.Normalize()
	for i := 1; i <= mm.FacingLine; i++ {
		cv.SetPixel(px+int(dir.X*float64(i)), py+int(dir.Y*float64(i)), selfColor)
	}
	cv.DrawRect(px-1, py-1, 3, 3, selfColor)
}
