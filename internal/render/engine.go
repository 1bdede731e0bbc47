package render

import (
	"fmt"
	"strings"

	"gridcaster/internal/canvas"
	"gridcaster/internal/vmath"
)

const HUDRows = 3

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch   rune
	Fg   canvas.RGBA
	Bg   canvas.RGBA
	Bold bool
}

var sentinel = Cell{Ch: '\x00', Fg: canvas.RGBA{R: 255}, Bg: canvas.RGBA{B: 255}, Bold: true}

// HUDInfo is what the status bar shows under the view.
type HUDInfo struct {
	PlayerName string
	MapName    string
	Pos        vmath.Vec2
	Angle      float64
	Pitch      float64
	Online     int
	Notice     string
}

// ViewSize returns the number of cell columns and rows left for the 3D
// view on a termW x termH terminal. A canvas of cols x 2*rows pixels maps
// onto it one to one.
func ViewSize(termW, termH int) (cols, rows int) {
	rows = termH - HUDRows
	if rows < 0 {
		rows = 0
	}
	if termW < 0 {
		termW = 0
	}
	return termW, rows
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame.
func (e *Engine) Render(view *canvas.Canvas, hud HUDInfo, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	e.ComposeFrame(view, hud)
	return e.flush()
}

// ComposeFrame fills the back buffer with the view as half blocks and the
// HUD below it, without emitting anything.
func (e *Engine) ComposeFrame(view *canvas.Canvas, hud HUDInfo) {
	bgCell := Cell{Ch: ' ', Bg: canvas.RGBA{R: 10, G: 10, B: 15}}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	cols, rows := ViewSize(e.width, e.height)
	if view != nil && cols > 0 && rows > 0 {
		cells := HalfBlocks(Downsample(view, cols, rows))
		for y, row := range cells {
			copy(e.next[y], row)
		}
	}

	e.drawHUD(hud)
}

// flush diffs current vs next and emits only changed cells.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

var (
	hudBg     = canvas.RGBA{R: 15, G: 18, B: 30}
	hudText   = canvas.RGBA{R: 180, G: 180, B: 195}
	hudDim    = canvas.RGBA{R: 60, G: 65, B: 85}
	hudName   = canvas.RGBA{R: 255, G: 210, B: 120}
	hudNotice = canvas.RGBA{R: 255, G: 220, B: 100}
	hudHelp   = canvas.RGBA{R: 130, G: 130, B: 145}
)

func (e *Engine) drawHUD(hud HUDInfo) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	// Row 0: separator, a thin gradient line
	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.next[hudY][x] = Cell{
			Ch: '━',
			Fg: canvas.RGBA{R: 40 + t, G: 70 + t, B: 90 + t},
			Bg: hudBg,
		}
	}
	for row := 1; row < HUDRows; row++ {
		for x := 0; x < e.width; x++ {
			e.next[hudY+row][x] = Cell{Ch: ' ', Bg: hudBg}
		}
	}

	splitCol := e.width / 2

	// Row 1 left: player, map, online count
	row1 := hudY + 1
	col := e.writeText(row1, 1, splitCol, hud.PlayerName, hudName, true)
	col = e.writeText(row1, col, splitCol, "  │  ", hudDim, false)
	col = e.writeText(row1, col, splitCol, hud.MapName, hudText, false)
	col = e.writeText(row1, col, splitCol, "  │  ", hudDim, false)
	e.writeText(row1, col, splitCol, fmt.Sprintf("%d Online", hud.Online), hudText, false)

	// Row 1 right: position and view
	pose := fmt.Sprintf("(%.1f, %.1f)  %3.0f°  pitch %+.1f",
		hud.Pos.X, hud.Pos.Y, vmath.NormalizeAngle(hud.Angle)*vmath.RadToDeg, hud.Pitch)
	e.writeText(row1, splitCol+2, e.width, pose, hudText, false)

	// Row 2: controls, or the current notice
	row2 := hudY + 2
	if hud.Notice != "" {
		e.writeText(row2, 1, e.width, hud.Notice, hudNotice, true)
		return
	}
	e.writeText(row2, 1, e.width, "WASD Move  │  ←→/JL Turn  │  IK Look  │  M Map  │  Q Quit", hudHelp, false)
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fg canvas.RGBA, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, Fg: fg, Bg: hudBg, Bold: bold}
		}
		col++
	}
	return col
}
