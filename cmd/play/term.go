package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/render"
	"gridcaster/internal/vmath"
)

// keyBytes maps tcell's decoded keys back to the byte sequences the
// shared input parser understands.
var keyBytes = map[tcell.Key]string{
	tcell.KeyUp:    "\x1b[A",
	tcell.KeyDown:  "\x1b[B",
	tcell.KeyRight: "\x1b[C",
	tcell.KeyLeft:  "\x1b[D",
	tcell.KeyCtrlC: "\x03",
}

func keyActions(key tcell.Key, r rune) []game.Action {
	if key == tcell.KeyEscape {
		return []game.Action{game.ActionQuit}
	}
	if key == tcell.KeyRune {
		return game.ParseInput([]byte(string(r)))
	}
	if seq, ok := keyBytes[key]; ok {
		return game.ParseInput([]byte(seq))
	}
	return nil
}

// runTerm plays in the current terminal with half-block pixels.
func runTerm(s *session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return playTerm(screen, s)
}

// pumpEvents forwards screen events until the screen is finalized or quit
// is closed.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// playTerm runs the game on an initialized screen until the player quits.
func playTerm(screen tcell.Screen, s *session) error {
	screen.HideCursor()
	screen.Clear()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pumpEvents(screen, events, quit)

	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				actions := keyActions(ev.Key(), ev.Rune())
				for _, a := range actions {
					if a == game.ActionQuit {
						return nil
					}
				}
				// a key press is worth one tick of held input, as over SSH
				s.apply(actions, game.StepSeconds)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			s.step(nil, game.StepSeconds)
			drawTerm(screen, s)
		}
	}
}

func termStyle(fg, bg canvas.RGBA, bold bool) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))).
		Bold(bold)
}

func drawTerm(screen tcell.Screen, s *session) {
	w, h := screen.Size()
	cols, rows := render.ViewSize(w, h)

	cells := render.HalfBlocks(render.Downsample(s.draw(), cols, rows))
	for y, row := range cells {
		for x, c := range row {
			screen.SetContent(x, y, c.Ch, nil, termStyle(c.Fg, c.Bg, c.Bold))
		}
	}

	hud := s.hud()
	bar := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for y := rows; y < h; y++ {
		for x := 0; x < w; x++ {
			screen.SetContent(x, y, ' ', nil, bar)
		}
	}
	status := fmt.Sprintf(" %s │ %s │ (%.1f, %.1f) %3.0f° pitch %+.1f",
		hud.PlayerName, hud.MapName, hud.Pos.X, hud.Pos.Y,
		vmath.NormalizeAngle(hud.Angle)*vmath.RadToDeg, hud.Pitch)
	putText(screen, 0, rows+1, status, bar.Bold(true))

	help := " WASD Move │ ←→/JL Turn │ IK Look │ M Map │ Q/Esc Quit"
	if hud.Notice != "" {
		help = " " + hud.Notice
	}
	putText(screen, 0, rows+2, help, bar)

	screen.Show()
}

func putText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
