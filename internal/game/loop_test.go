package game

import (
	"math"
	"strings"
	"testing"

	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

func newTestLoop() *GameLoop {
	room := maps.BorderMap("Room", 10, 10, 1)
	room.Spawn = maps.Spawn{X: 5, Y: 5, Angle: 0}
	world := NewWorld(map[string]*maps.Map{room.Name: room}, "Room")
	return NewGameLoop(world, DefaultMovement())
}

func TestNewWorldFallsBackToFirstMap(t *testing.T) {
	a := maps.BorderMap("Alpha", 4, 4, 1)
	b := maps.BorderMap("Beta", 4, 4, 1)
	w := NewWorld(map[string]*maps.Map{"Beta": b, "Alpha": a}, "Missing")
	if w.DefaultMap != "Alpha" {
		t.Errorf("default = %q, want Alpha", w.DefaultMap)
	}
	name, pos, _ := w.SpawnPoint()
	if name != "Alpha" || pos != vmath.V(2, 2) {
		t.Errorf("spawn = %s %v", name, pos)
	}
	if w.CanMoveTo("Alpha", vmath.V(0.5, 0.5)) || !w.CanMoveTo("Alpha", vmath.V(1.5, 1.5)) {
		t.Error("CanMoveTo disagrees with the map")
	}
	if w.CanMoveTo("Nowhere", vmath.V(1.5, 1.5)) {
		t.Error("CanMoveTo on unknown map should be false")
	}
}

func TestAddPlayerSpawnsAndSuffixesDuplicates(t *testing.T) {
	gl := newTestLoop()
	id1, _ := gl.AddPlayer("alice")
	id2, _ := gl.AddPlayer("alice")

	if id1 != "alice" {
		t.Errorf("first id = %q", id1)
	}
	if id2 == id1 || !strings.HasPrefix(id2, "alice_") {
		t.Errorf("second id = %q, want alice_NNNN", id2)
	}
	if gl.PlayerCount() != 2 {
		t.Errorf("count = %d", gl.PlayerCount())
	}
	state := gl.snapshot()
	p, ok := state.Player(id1)
	if !ok || p.Pos != vmath.V(5, 5) || p.MapName != "Room" || !p.ShowMinimap {
		t.Errorf("spawned player = %+v", p)
	}
	if others := state.Others(id1, "Room"); len(others) != 1 {
		t.Errorf("others = %v", others)
	}
}

func TestInputIsAppliedOnTick(t *testing.T) {
	gl := newTestLoop()
	id, ch := gl.AddPlayer("bob")

	gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionForward}
	gl.InputChan() <- InputEvent{PlayerID: "ghost", Action: ActionForward}
	gl.tick()

	state := <-ch
	p, _ := state.Player(id)
	if math.Abs(p.Pos.X-5.15) > 1e-9 || p.Pos.Y != 5 {
		t.Errorf("pos after one step = %v, want (5.15, 5)", p.Pos)
	}
	if state.Tick != 1 {
		t.Errorf("tick = %d", state.Tick)
	}
}

func TestSlowClientFramesAreDropped(t *testing.T) {
	gl := newTestLoop()
	_, ch := gl.AddPlayer("slow")
	for i := 0; i < 5; i++ {
		gl.tick() // must not block with nobody reading
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d of %d", len(ch), cap(ch))
	}
	if first := <-ch; first.Tick != 1 {
		t.Errorf("oldest kept frame tick = %d, want 1", first.Tick)
	}
}

func TestReconnectRestoresState(t *testing.T) {
	gl := newTestLoop()
	id, ch := gl.AddPlayer("carol")
	gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionTurnRight}
	gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionToggleMap}
	gl.tick()
	<-ch

	gl.RemovePlayer(id)
	if _, open := <-ch; open {
		t.Error("render channel not closed on remove")
	}

	id, _ = gl.AddPlayer("carol")
	p, _ := gl.snapshot().Player(id)
	if math.Abs(p.Angle-0.15) > 1e-9 || p.ShowMinimap {
		t.Errorf("restored = %+v, want angle 0.15 and minimap off", p)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	gl := newTestLoop()
	done := make(chan struct{})
	go func() {
		gl.Run()
		close(done)
	}()
	gl.Stop()
	gl.Stop()
	<-done
}
