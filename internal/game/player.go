package game

import (
	"gridcaster/internal/raycast"
	"gridcaster/internal/vmath"
)

// Action represents a player input action.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight
	ActionLookUp
	ActionLookDown
	ActionToggleMap
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionForward:     "forward",
	ActionBack:        "back",
	ActionStrafeLeft:  "strafe-left",
	ActionStrafeRight: "strafe-right",
	ActionTurnLeft:    "turn-left",
	ActionTurnRight:   "turn-right",
	ActionLookUp:      "look-up",
	ActionLookDown:    "look-down",
	ActionToggleMap:   "toggle-map",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// InputEvent carries a player action into the game loop.
type InputEvent struct {
	PlayerID string
	Action   Action
}

// Player holds the game state for a connected player.
type Player struct {
	ID      string
	Name    string
	MapName string

	Pos   vmath.Vec2
	Angle float64 // yaw in radians, kept in [0, 2π)
	Pitch float64 // look up/down, clamped by Movement.PitchLimit

	ShowMinimap bool
	Notice      string // short HUD message, e.g. "Minimap ON"
	NoticeTicks int    // ticks left before Notice is cleared
}

// NewPlayer places a player at a map spawn.
func NewPlayer(id, name, mapName string, pos vmath.Vec2, angle float64) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		MapName:     mapName,
		Pos:         pos,
		Angle:       vmath.NormalizeAngle(angle),
		ShowMinimap: true,
	}
}

// PlayerSnapshot is a read-only copy of player state for rendering.
type PlayerSnapshot struct {
	ID          string
	Name        string
	MapName     string
	Pos         vmath.Vec2
	Angle       float64
	Pitch       float64
	ShowMinimap bool
	Notice      string
}

// Snapshot returns a read-only copy of the player.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		MapName:     p.MapName,
		Pos:         p.Pos,
		Angle:       p.Angle,
		Pitch:       p.Pitch,
		ShowMinimap: p.ShowMinimap,
		Notice:      p.Notice,
	}
}

// Facing is the unit heading vector.
func (s PlayerSnapshot) Facing() vmath.Vec2 {
	return vmath.FromAngle(s.Angle)
}

// Camera derives the ray-casting camera from the player's view.
func (s PlayerSnapshot) Camera(planeScale float64) raycast.Camera {
	return raycast.Camera{
		Position:  s.Pos,
		Direction: vmath.FromAngle(s.Angle),
		Plane:     vmath.FromAngle(s.Angle + vmath.HalfPi).Scale(planeScale),
		Pitch:     s.Pitch,
	}
}

// Camera is a shorthand for p.Snapshot().Camera(planeScale).
func (p *Player) Camera(planeScale float64) raycast.Camera {
	return p.Snapshot().Camera(planeScale)
}

// SetNotice shows msg in the HUD for NoticeDuration ticks.
func (p *Player) SetNotice(msg string) {
	p.Notice = msg
	p.NoticeTicks = NoticeDuration
}

// TickNotice counts down the HUD notice by one game tick.
func (p *Player) TickNotice() {
	if p.NoticeTicks == 0 {
		return
	}
	p.NoticeTicks--
	if p.NoticeTicks == 0 {
		p.Notice = ""
	}
}
