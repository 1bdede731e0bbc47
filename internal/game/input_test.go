package game

import (
	"reflect"
	"testing"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Action
	}{
		{"wasd", "wasd", []Action{ActionForward, ActionStrafeLeft, ActionBack, ActionStrafeRight}},
		{"upper case", "WM", []Action{ActionForward, ActionToggleMap}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Action{ActionForward, ActionBack, ActionTurnRight, ActionTurnLeft}},
		{"look and turn keys", "ikjl", []Action{ActionLookUp, ActionLookDown, ActionTurnLeft, ActionTurnRight}},
		{"quit", "q", []Action{ActionQuit}},
		{"ctrl-c", "\x03", []Action{ActionQuit}},
		{"unknown bytes ignored", "xz1", nil},
		{"unknown escape skipped", "\x1b[Zw", []Action{ActionForward}},
		{"multibyte rune skipped", "éw", []Action{ActionForward}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInput([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInput(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionStrafeLeft.String() != "strafe-left" {
		t.Errorf("got %q", ActionStrafeLeft.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("got %q", Action(99).String())
	}
}
