package game

import (
	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

// Movement holds the speeds and limits applied to player input.
type Movement struct {
	MoveSpeed        float64 // map units per second
	TurnSpeed        float64 // radians per second
	MouseSensitivity float64 // radians per pixel of mouse motion
	PitchLimit       float64 // |Pitch| never exceeds this
	PitchSpeed       float64 // pitch units per second for look keys
	PlaneScale       float64 // camera plane length; 0.66 gives a ~66° FOV
}

// DefaultMovement returns the stock tuning.
func DefaultMovement() Movement {
	return Movement{
		MoveSpeed:        3.0,
		TurnSpeed:        3.0,
		MouseSensitivity: 0.003,
		PitchLimit:       4.0,
		PitchSpeed:       2.0,
		PlaneScale:       0.66,
	}
}

// Move shifts the player by forward units along the view direction and
// strafe units to the right of it. The move is rejected as a whole when the
// destination is not a valid position on m. It reports whether the player
// moved.
func (p *Player) Move(forward, strafe float64, m *maps.Map) bool {
	dir := vmath.FromAngle(p.Angle)
	right := dir.Rotate(vmath.HalfPi)
	next := p.Pos.Add(dir.Scale(forward)).Add(right.Scale(strafe))
	if !m.IsValidPosition(next) {
		return false
	}
	p.Pos = next
	return true
}

// Turn adds delta radians of yaw; positive turns right on screen.
func (p *Player) Turn(delta float64) {
	p.Angle = vmath.NormalizeAngle(p.Angle + delta)
}

// Tilt adds delta to the pitch and clamps it.
func (p *Player) Tilt(delta float64, mv Movement) {
	p.Pitch = vmath.Clamp(p.Pitch+delta, -mv.PitchLimit, mv.PitchLimit)
}

// Look applies relative mouse motion in pixels. Moving the mouse up looks up.
func (p *Player) Look(dx, dy float64, mv Movement) {
	p.Turn(dx * mv.MouseSensitivity)
	p.Tilt(-dy*mv.MouseSensitivity, mv)
}

// Apply runs one action for dt seconds of held input. Actions that do not
// move the view (quit, none) are ignored.
func (mv Movement) Apply(p *Player, a Action, m *maps.Map, dt float64) {
	step := mv.MoveSpeed * dt
	turn := mv.TurnSpeed * dt
	switch a {
	case ActionForward:
		p.Move(step, 0, m)
	case ActionBack:
		p.Move(-step, 0, m)
	case ActionStrafeLeft:
		p.Move(0, -step, m)
	case ActionStrafeRight:
		p.Move(0, step, m)
	case ActionTurnLeft:
		p.Turn(-turn)
	case ActionTurnRight:
		p.Turn(turn)
	case ActionLookUp:
		p.Tilt(mv.PitchSpeed*dt, mv)
	case ActionLookDown:
		p.Tilt(-mv.PitchSpeed*dt, mv)
	case ActionToggleMap:
		p.ShowMinimap = !p.ShowMinimap
		if p.ShowMinimap {
			p.SetNotice("Minimap ON")
		} else {
			p.SetNotice("Minimap OFF")
		}
	}
}
