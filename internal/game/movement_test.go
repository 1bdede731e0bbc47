package game

import (
	"math"
	"testing"

	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

func near(a, b vmath.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestMove(t *testing.T) {
	m := maps.BorderMap("room", 10, 10, 1)

	tests := []struct {
		name            string
		start           vmath.Vec2
		angle           float64
		forward, strafe float64
		want            vmath.Vec2
		moved           bool
	}{
		{"forward east", vmath.V(5, 5), 0, 1, 0, vmath.V(6, 5), true},
		{"back east", vmath.V(5, 5), 0, -1, 0, vmath.V(4, 5), true},
		{"strafe right is +y when facing east", vmath.V(5, 5), 0, 0, 1, vmath.V(5, 6), true},
		{"strafe left", vmath.V(5, 5), 0, 0, -1, vmath.V(5, 4), true},
		{"into the west wall", vmath.V(1.5, 5), math.Pi, 1, 0, vmath.V(1.5, 5), false},
		{"past the map edge", vmath.V(8.5, 5), 0, 5, 0, vmath.V(8.5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("p", "p", "room", tt.start, tt.angle)
			moved := p.Move(tt.forward, tt.strafe, m)
			if moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if !near(p.Pos, tt.want) {
				t.Errorf("pos = %v, want %v", p.Pos, tt.want)
			}
		})
	}
}

func TestTurnWraps(t *testing.T) {
	p := NewPlayer("p", "p", "room", vmath.V(1, 1), 0)
	p.Turn(-0.5)
	if math.Abs(p.Angle-(vmath.TwoPi-0.5)) > 1e-9 {
		t.Errorf("angle = %v, want 2π-0.5", p.Angle)
	}
	p.Turn(1)
	if math.Abs(p.Angle-0.5) > 1e-9 {
		t.Errorf("angle = %v, want 0.5", p.Angle)
	}
}

func TestLook(t *testing.T) {
	mv := DefaultMovement()
	p := NewPlayer("p", "p", "room", vmath.V(1, 1), 0)

	p.Look(100, 0, mv)
	if math.Abs(p.Angle-0.3) > 1e-9 {
		t.Errorf("yaw after 100px = %v, want 0.3", p.Angle)
	}

	p.Look(0, -100, mv) // mouse up
	if math.Abs(p.Pitch-0.3) > 1e-9 {
		t.Errorf("pitch = %v, want 0.3", p.Pitch)
	}

	p.Look(0, 1e6, mv)
	if p.Pitch != -mv.PitchLimit {
		t.Errorf("pitch = %v, want clamped to %v", p.Pitch, -mv.PitchLimit)
	}
}

func TestApply(t *testing.T) {
	mv := DefaultMovement()
	m := maps.BorderMap("room", 10, 10, 1)

	p := NewPlayer("p", "p", "room", vmath.V(5, 5), 0)
	mv.Apply(p, ActionForward, m, StepSeconds)
	if !near(p.Pos, vmath.V(5.15, 5)) {
		t.Errorf("one forward step = %v, want (5.15, 5)", p.Pos)
	}

	mv.Apply(p, ActionTurnRight, m, StepSeconds)
	if math.Abs(p.Angle-0.15) > 1e-9 {
		t.Errorf("angle = %v, want 0.15", p.Angle)
	}

	mv.Apply(p, ActionLookUp, m, StepSeconds)
	if math.Abs(p.Pitch-0.1) > 1e-9 {
		t.Errorf("pitch = %v, want 0.1", p.Pitch)
	}

	before := *p
	mv.Apply(p, ActionQuit, m, StepSeconds)
	if *p != before {
		t.Error("quit changed the player")
	}
}

func TestToggleMapNotice(t *testing.T) {
	mv := DefaultMovement()
	m := maps.BorderMap("room", 10, 10, 1)
	p := NewPlayer("p", "p", "room", vmath.V(5, 5), 0)

	mv.Apply(p, ActionToggleMap, m, StepSeconds)
	if p.ShowMinimap || p.Notice != "Minimap OFF" {
		t.Fatalf("after toggle: show=%v notice=%q", p.ShowMinimap, p.Notice)
	}
	for i := 0; i < NoticeDuration-1; i++ {
		p.TickNotice()
	}
	if p.Notice == "" {
		t.Fatal("notice cleared too early")
	}
	p.TickNotice()
	if p.Notice != "" {
		t.Errorf("notice = %q after %d ticks, want cleared", p.Notice, NoticeDuration)
	}
}

func TestCamera(t *testing.T) {
	p := NewPlayer("p", "p", "room", vmath.V(3, 4), 0)
	p.Pitch = 0.25
	cam := p.Camera(0.66)

	if !near(cam.Direction, vmath.V(1, 0)) {
		t.Errorf("direction = %v", cam.Direction)
	}
	if !near(cam.Plane, vmath.V(0, 0.66)) {
		t.Errorf("plane = %v, want (0, 0.66)", cam.Plane)
	}
	if cam.Position != p.Pos || cam.Pitch != 0.25 {
		t.Errorf("camera = %+v", cam)
	}
}
