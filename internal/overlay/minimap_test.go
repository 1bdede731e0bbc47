package overlay

import (
	"testing"

	"gridcaster/internal/canvas"
	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

func TestMinimapLayout(t *testing.T) {
	cv := canvas.New(320, 200)
	cv.Clear(canvas.RGB(1, 2, 3))
	m := maps.DefaultMap() // 24x24, border id 1, center block id 5
	mm := DefaultMinimap()

	mm.Draw(cv, m, vmath.V(12, 12), vmath.V(1, 0), []vmath.Vec2{vmath.V(3.5, 3.5)})

	ox, oy := mm.Origin(cv)
	if ox != 210 || oy != 10 {
		t.Fatalf("origin = (%d,%d), want (210,10)", ox, oy)
	}

	tests := []struct {
		name string
		x, y int
		want canvas.RGBA
	}{
		{"border top-left", ox - 1, oy - 1, borderColor},
		{"border bottom-right", ox + mm.Size, oy + mm.Size, borderColor},
		{"border tile", ox, oy, TileColor(1)},
		{"last tile fills box", ox + mm.Size - 1, oy + mm.Size - 1, TileColor(1)},
		{"floor tile", ox + 9, oy + 9, TileColor(maps.Floor)},
		{"viewer", ox + 50, oy + 50, selfColor},
		{"facing line", ox + 50 + mm.FacingLine, oy + 50, selfColor},
		{"other player", ox + 14, oy + 14, otherColor},
		{"outside untouched", 0, 0, canvas.RGB(1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cv.Pixel(tt.x, tt.y); got != tt.want {
				t.Errorf("Pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMinimapClipsOnSmallCanvas(t *testing.T) {
	cv := canvas.New(40, 30)
	before := len(cv.Pixels())
	DefaultMinimap().Draw(cv, maps.DefaultMap(), vmath.V(12, 12), vmath.V(0, 1), nil)
	if len(cv.Pixels()) != before {
		t.Error("canvas size changed")
	}
}

func TestMinimapFitsCanvas(t *testing.T) {
	mm := DefaultMinimap()
	tests := []struct {
		name         string
		w, h         int
		size, ox, oy int
	}{
		{"large view keeps full size", 320, 200, 100, 210, 10},
		{"80x24 terminal", 80, 42, 21, 49, 10},
		{"narrow", 30, 200, 10, 10, 10},
		{"tiny", 2, 2, 0, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := canvas.New(tt.w, tt.h)
			size := mm.BoxSize(cv)
			ox, oy := mm.Origin(cv)
			if size != tt.size || ox != tt.ox || oy != tt.oy {
				t.Errorf("size %d origin (%d,%d), want %d (%d,%d)", size, ox, oy, tt.size, tt.ox, tt.oy)
			}
		})
	}
}

func TestMinimapSkipsTinyCanvas(t *testing.T) {
	cv := canvas.New(2, 2)
	cv.Clear(canvas.RGB(9, 9, 9))
	DefaultMinimap().Draw(cv, maps.DefaultMap(), vmath.V(12, 12), vmath.V(1, 0), nil)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := cv.Pixel(x, y); got != canvas.RGB(9, 9, 9) {
				t.Errorf("Pixel(%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(1) != canvas.RGB(255, 255, 255) {
		t.Errorf("id 1 = %v", TileColor(1))
	}
	if TileColor(42) != unknownTile {
		t.Errorf("unknown id = %v", TileColor(42))
	}
}
