package render

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"gridcaster/internal/canvas"
	"gridcaster/internal/vmath"
)

var (
	red  = canvas.RGB(255, 0, 0)
	blue = canvas.RGB(0, 0, 255)
)

// splitCanvas is red on the left half and blue on the right.
func splitCanvas(w, h int) *canvas.Canvas {
	cv := canvas.New(w, h)
	cv.Clear(blue)
	cv.DrawRect(0, 0, w/2, h, red)
	return cv
}

func TestViewSize(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{80, 24, 80, 21},
		{10, 2, 10, 0},
		{-1, 5, 0, 2},
	}
	for _, tt := range tests {
		cols, rows := ViewSize(tt.w, tt.h)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("ViewSize(%d,%d) = %d,%d want %d,%d", tt.w, tt.h, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestDownsampleSameSizeCopies(t *testing.T) {
	cv := canvas.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			cv.SetPixel(x, y, canvas.RGB(uint8(x*60), uint8(y*60), 7))
		}
	}
	img := Downsample(cv, 4, 2)
	if !bytes.Equal(img.Pix, cv.Pixels()) {
		t.Error("1:1 downsample changed pixels")
	}
}

func TestDownsampleScales(t *testing.T) {
	img := Downsample(splitCanvas(40, 40), 4, 2)
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v", b)
	}
	if got := rgbaAt(img, 0, 0); got != red {
		t.Errorf("top-left = %v, want red", got)
	}
	if got := rgbaAt(img, 3, 3); got != blue {
		t.Errorf("bottom-right = %v, want blue", got)
	}
}

func TestDownsampleEmpty(t *testing.T) {
	img := Downsample(canvas.New(0, 0), 3, 2)
	if img.Bounds().Dx() != 3 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	set := func(x, y int, c canvas.RGBA) {
		i := img.PixOffset(x, y)
		copy(img.Pix[i:i+4], []byte{c.R, c.G, c.B, c.A})
	}
	set(0, 0, red)
	set(0, 1, blue)
	set(1, 3, red)

	cells := HalfBlocks(img)
	if len(cells) != 2 || len(cells[0]) != 2 {
		t.Fatalf("got %dx%d cells", len(cells), len(cells[0]))
	}
	if c := cells[0][0]; c.Ch != UpperHalf || c.Fg != red || c.Bg != blue {
		t.Errorf("cell (0,0) = %+v", c)
	}
	if c := cells[1][1]; c.Bg != red || c.Fg != (canvas.RGBA{A: 255}) {
		t.Errorf("cell (1,1) = %+v", c)
	}
}

func TestEngineDiff(t *testing.T) {
	const w, h = 12, 8
	cols, rows := ViewSize(w, h)
	cv := splitCanvas(cols, rows*2)
	hud := HUDInfo{PlayerName: "ann", MapName: "Default", Online: 1}

	e := NewEngine(w, h)
	first := e.Render(cv, hud, w, h)
	if !strings.HasPrefix(first, MoveTo(1, 1)) {
		t.Errorf("first frame does not start at home: %q", first[:min(len(first), 12)])
	}
	if !strings.ContainsRune(first, UpperHalf) || !strings.HasSuffix(first, Reset) {
		t.Error("first frame missing half blocks or reset")
	}

	if again := e.Render(cv, hud, w, h); again != "" {
		t.Errorf("unchanged frame emitted %d bytes", len(again))
	}

	cv.SetPixel(cols-1, 0, red)
	changed := e.Render(cv, hud, w, h)
	if changed == "" || len(changed) >= len(first) {
		t.Errorf("one changed cell emitted %d bytes (full frame %d)", len(changed), len(first))
	}
	if !strings.HasPrefix(changed, MoveTo(1, cols)) {
		t.Errorf("changed cell not addressed: %q", changed)
	}

	resized := e.Render(cv, hud, w+2, h)
	if len(resized) <= len(first) {
		t.Error("resize did not force a full redraw")
	}
}

func TestHUD(t *testing.T) {
	e := NewEngine(60, 6)
	e.ComposeFrame(nil, HUDInfo{
		PlayerName: "ann",
		MapName:    "Maze",
		Pos:        vmath.V(3.3, 4),
		Angle:      vmath.HalfPi,
		Online:     3,
		Notice:     "Minimap OFF",
	})

	line := func(row int) string {
		var sb strings.Builder
		for _, c := range e.next[row] {
			sb.WriteRune(c.Ch)
		}
		return sb.String()
	}

	if got := line(3); !strings.HasPrefix(got, "━") {
		t.Errorf("separator row = %q", got)
	}
	row1 := line(4)
	for _, want := range []string{"ann", "Maze", "3 Online", "(3.3, 4.0)", " 90°"} {
		if !strings.Contains(row1, want) {
			t.Errorf("HUD row %q missing %q", row1, want)
		}
	}
	if got := line(5); !strings.Contains(got, "Minimap OFF") {
		t.Errorf("notice row = %q", got)
	}
}

func TestWriteCellSGR(t *testing.T) {
	var sb strings.Builder
	WriteCellSGR(&sb, Cell{Ch: 'x', Fg: canvas.RGB(1, 2, 3), Bg: canvas.RGB(4, 5, 6), Bold: true})
	if got, want := sb.String(), "\x1b[0;1;38;2;1;2;3;48;2;4;5;6mx"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
