//go:build cgo

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gridcaster/internal/game"
)

const windowTPS = 60

var heldKeys = []struct {
	keys   []ebiten.Key
	action game.Action
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, game.ActionForward},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, game.ActionBack},
	{[]ebiten.Key{ebiten.KeyA}, game.ActionStrafeLeft},
	{[]ebiten.Key{ebiten.KeyD}, game.ActionStrafeRight},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyJ}, game.ActionTurnLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyL}, game.ActionTurnRight},
	{[]ebiten.Key{ebiten.KeyI}, game.ActionLookUp},
	{[]ebiten.Key{ebiten.KeyK}, game.ActionLookDown},
}

// runWindow opens a desktop window and blocks until it closes.
func runWindow(s *session, scale int) error {
	if scale < 1 {
		scale = 1
	}
	g := &windowGame{s: s}
	ebiten.SetWindowTitle("gridcaster: " + s.m.Name)
	ebiten.SetWindowSize(s.view.Width()*scale, s.view.Height()*scale)
	ebiten.SetTPS(windowTPS)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	return ebiten.RunGame(g)
}

type windowGame struct {
	s     *session
	frame *ebiten.Image

	mouseX, mouseY int
	mouseSeen      bool
	actions        []game.Action
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.actions = g.actions[:0]
	for _, h := range heldKeys {
		for _, k := range h.keys {
			if ebiten.IsKeyPressed(k) {
				g.actions = append(g.actions, h.action)
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.actions = append(g.actions, game.ActionToggleMap)
	}

	x, y := ebiten.CursorPosition()
	if g.mouseSeen && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		g.s.look(float64(x-g.mouseX), float64(y-g.mouseY))
	}
	g.mouseX, g.mouseY, g.mouseSeen = x, y, true

	g.s.step(g.actions, 1.0/windowTPS)
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.s.view.Width(), g.s.view.Height())
	}
	if pix, changed := g.s.frame(); changed {
		g.frame.WritePixels(pix)
	}
	screen.DrawImage(g.frame, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.s.view.Width(), g.s.view.Height()
}
