package render

import (
	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/maps"
	"gridcaster/internal/overlay"
	"gridcaster/internal/raycast"
	"gridcaster/internal/vmath"
)

// Scene draws one player's view of a game state: the ray-cast pass, then
// the minimap pass on the same canvas.
type Scene struct {
	Caster     *raycast.Caster
	Minimap    overlay.Minimap
	PlaneScale float64
}

// NewScene returns a scene with the stock caster, minimap and FOV.
func NewScene() *Scene {
	return &Scene{
		Caster:     raycast.NewCaster(raycast.DefaultConfig()),
		Minimap:    overlay.DefaultMinimap(),
		PlaneScale: game.DefaultMovement().PlaneScale,
	}
}

// Draw renders self's view of m into cv.
func (s *Scene) Draw(cv *canvas.Canvas, m *maps.Map, self game.PlayerSnapshot, others []game.PlayerSnapshot) {
	s.Caster.Render(cv, self.Camera(s.PlaneScale), m)
	if !self.ShowMinimap {
		return
	}
	dots := make([]vmath.Vec2, 0, len(others))
	for _, o := range others {
		if o.ID != self.ID && o.MapName == self.MapName {
			dots = append(dots, o.Pos)
		}
	}
	s.Minimap.Draw(cv, m, self.Pos, self.Facing(), dots)
}

// DrawState renders the view of player id out of a loop snapshot. It
// reports false when the player or their map is not in the state.
func (s *Scene) DrawState(cv *canvas.Canvas, state game.GameState, id string) (game.PlayerSnapshot, bool) {
	self, ok := state.Player(id)
	if !ok {
		return game.PlayerSnapshot{}, false
	}
	m := state.Maps[self.MapName]
	if m == nil {
		return self, false
	}
	s.Draw(cv, m, self, state.Players)
	return self, true
}

// HUDFor builds the status bar content for a player.
func HUDFor(self game.PlayerSnapshot, online int) HUDInfo {
	return HUDInfo{
		PlayerName: self.Name,
		MapName:    self.MapName,
		Pos:        self.Pos,
		Angle:      self.Angle,
		Pitch:      self.Pitch,
		Online:     online,
		Notice:     self.Notice,
	}
}
