package main

import (
	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/maps"
	"gridcaster/internal/render"
	"gridcaster/internal/vmath"
)

// session is a single offline player walking one map.
type session struct {
	m      *maps.Map
	player *game.Player
	mv     game.Movement
	scene  *render.Scene
	view   *canvas.Canvas
	shown  canvas.ChangeTracker

	// seconds of play not yet counted as a notice tick
	pending float64
}

func newSession(m *maps.Map, width, height int) *session {
	p := game.NewPlayer("local", "Player", m.Name, vmath.V(m.Spawn.X, m.Spawn.Y), m.Spawn.Angle)
	return &session{
		m:      m,
		player: p,
		mv:     game.DefaultMovement(),
		scene:  render.NewScene(),
		view:   canvas.New(width, height),
	}
}

// apply runs actions as if held for dt seconds.
func (s *session) apply(actions []game.Action, dt float64) {
	for _, a := range actions {
		s.mv.Apply(s.player, a, s.m, dt)
	}
}

// step applies held actions for dt seconds, then advances the HUD notice.
func (s *session) step(actions []game.Action, dt float64) {
	s.apply(actions, dt)

	tick := game.TickDuration.Seconds()
	s.pending += dt
	for s.pending >= tick {
		s.player.TickNotice()
		s.pending -= tick
	}
}

// look turns the view by relative mouse motion.
func (s *session) look(dx, dy float64) {
	s.player.Look(dx, dy, s.mv)
}

// draw renders the current view.
func (s *session) draw() *canvas.Canvas {
	s.scene.Draw(s.view, s.m, s.player.Snapshot(), nil)
	return s.view
}

// frame renders the view and returns its pixels when they differ from the
// last frame returned this way.
func (s *session) frame() ([]byte, bool) {
	if !s.shown.Changed(s.draw()) {
		return nil, false
	}
	return s.shown.Last(), true
}

func (s *session) hud() render.HUDInfo {
	return render.HUDFor(s.player.Snapshot(), 1)
}
