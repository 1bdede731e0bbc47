package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/game"
	"gridcaster/internal/maps"
)

func TestSessionWalk(t *testing.T) {
	s := newSession(maps.DefaultMap(), 64, 48)

	// one second of holding forward, facing east down an open row
	for i := 0; i < game.TickRate; i++ {
		s.step([]game.Action{game.ActionForward}, game.StepSeconds)
	}
	if got := s.player.Pos.X; math.Abs(got-15.5) > 1e-9 {
		t.Errorf("x = %v, want 15.5", got)
	}
	if got := s.player.Pos.Y; got != 10.5 {
		t.Errorf("y = %v, want 10.5", got)
	}
}

func TestSessionNoticeExpires(t *testing.T) {
	s := newSession(maps.DefaultMap(), 64, 48)

	s.apply([]game.Action{game.ActionToggleMap}, game.StepSeconds)
	if s.player.ShowMinimap || s.player.Notice != "Minimap OFF" {
		t.Fatalf("after toggle: minimap=%v notice=%q", s.player.ShowMinimap, s.player.Notice)
	}

	for i := 0; i < game.NoticeDuration; i++ {
		s.step(nil, game.StepSeconds)
	}
	if s.player.Notice != "" {
		t.Errorf("notice %q still showing", s.player.Notice)
	}
}

func TestSessionDraw(t *testing.T) {
	s := newSession(maps.DefaultMap(), 64, 48)
	cv := s.draw()
	if cv.Width() != 64 || cv.Height() != 48 {
		t.Fatalf("size = %dx%d", cv.Width(), cv.Height())
	}
	if got := cv.Pixel(0, 0); got.A != 255 {
		t.Errorf("top-left = %v, nothing was drawn", got)
	}
}

func TestSessionFrameSkipsUnchanged(t *testing.T) {
	s := newSession(maps.DefaultMap(), 64, 48)

	if _, changed := s.frame(); !changed {
		t.Fatal("first frame not uploaded")
	}
	if _, changed := s.frame(); changed {
		t.Error("identical frame uploaded again")
	}

	s.step([]game.Action{game.ActionTurnLeft}, game.StepSeconds)
	pix, changed := s.frame()
	if !changed || len(pix) != 64*48*4 {
		t.Errorf("turned frame: changed=%v len=%d", changed, len(pix))
	}
}

func TestHeadlessWritesFrame(t *testing.T) {
	s := newSession(maps.DefaultMap(), 40, 30)
	out := filepath.Join(t.TempDir(), "frame.png")

	if err := runHeadless(s, 5, out); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("frame not written: %v", err)
	}
	if s.player.Angle == 0 {
		t.Error("headless run did not turn the view")
	}
}

func TestKeyActions(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want game.Action
	}{
		{"up", tcell.KeyUp, 0, game.ActionForward},
		{"down", tcell.KeyDown, 0, game.ActionBack},
		{"left", tcell.KeyLeft, 0, game.ActionTurnLeft},
		{"right", tcell.KeyRight, 0, game.ActionTurnRight},
		{"rune d", tcell.KeyRune, 'd', game.ActionStrafeRight},
		{"rune m", tcell.KeyRune, 'm', game.ActionToggleMap},
		{"escape", tcell.KeyEscape, 0, game.ActionQuit},
		{"ctrl-c", tcell.KeyCtrlC, 0, game.ActionQuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyActions(tt.key, tt.r)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("keyActions = %v, want [%v]", got, tt.want)
			}
		})
	}

	if got := keyActions(tcell.KeyF1, 0); len(got) != 0 {
		t.Errorf("F1 = %v, want nothing", got)
	}
}
