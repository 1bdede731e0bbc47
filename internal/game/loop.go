package game

import (
	"fmt"
	"sync"
	"time"

	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

const InputChanSize = 256

// GameState is a snapshot sent to each session for rendering.
type GameState struct {
	Players []PlayerSnapshot
	Maps    map[string]*maps.Map
	Tick    uint64
}

// Player returns the snapshot with the given id.
func (s GameState) Player(id string) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// Others returns the positions of every player on mapName except id.
func (s GameState) Others(id, mapName string) []vmath.Vec2 {
	var out []vmath.Vec2
	for _, p := range s.Players {
		if p.ID != id && p.MapName == mapName {
			out = append(out, p.Pos)
		}
	}
	return out
}

// RenderChan is the per-session channel that receives game state snapshots.
type RenderChan chan GameState

// savedState holds persisted player data for reconnecting players.
type savedState struct {
	MapName     string
	Pos         vmath.Vec2
	Angle       float64
	Pitch       float64
	ShowMinimap bool
}

// GameLoop is the central game loop singleton.
type GameLoop struct {
	world     *World
	movement  Movement
	inputCh   chan InputEvent
	tickCount uint64

	mu          sync.RWMutex
	players     map[string]*Player
	renderChans map[string]RenderChan
	saved       map[string]savedState // keyed by username

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewGameLoop creates and returns a new game loop.
func NewGameLoop(world *World, mv Movement) *GameLoop {
	return &GameLoop{
		world:       world,
		movement:    mv,
		inputCh:     make(chan InputEvent, InputChanSize),
		players:     make(map[string]*Player),
		renderChans: make(map[string]RenderChan),
		saved:       make(map[string]savedState),
		stopCh:      make(chan struct{}),
	}
}

// InputChan returns the shared input channel for sessions to send events.
func (gl *GameLoop) InputChan() chan<- InputEvent {
	return gl.inputCh
}

// AddPlayer registers a player using their username as identity.
// If the username was seen before, map, position and view are restored.
// Returns the effective player ID and the render channel.
func (gl *GameLoop) AddPlayer(name string) (string, RenderChan) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	// If this username is already online, add a suffix
	id := name
	if _, online := gl.players[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	var player *Player
	if ss, ok := gl.saved[name]; ok && gl.world.GetMap(ss.MapName) != nil {
		player = NewPlayer(id, name, ss.MapName, ss.Pos, ss.Angle)
		player.Pitch = ss.Pitch
		player.ShowMinimap = ss.ShowMinimap
	} else {
		mapName, pos, angle := gl.world.SpawnPoint()
		player = NewPlayer(id, name, mapName, pos, angle)
	}

	gl.players[id] = player
	ch := make(RenderChan, 2)
	gl.renderChans[id] = ch
	return id, ch
}

// RemovePlayer saves the player's state and unregisters them.
func (gl *GameLoop) RemovePlayer(id string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if p, ok := gl.players[id]; ok {
		gl.saved[p.Name] = savedState{
			MapName:     p.MapName,
			Pos:         p.Pos,
			Angle:       p.Angle,
			Pitch:       p.Pitch,
			ShowMinimap: p.ShowMinimap,
		}
		delete(gl.players, id)
	}
	if ch, ok := gl.renderChans[id]; ok {
		close(ch)
		delete(gl.renderChans, id)
	}
}

// Player returns a snapshot of one online player.
func (gl *GameLoop) Player(id string) (PlayerSnapshot, bool) {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	p, ok := gl.players[id]
	if !ok {
		return PlayerSnapshot{}, false
	}
	return p.Snapshot(), true
}

// PlayerCount returns how many players are online.
func (gl *GameLoop) PlayerCount() int {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	return len(gl.players)
}

// Run starts the game loop. Blocks until Stop is called.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-gl.stopCh:
			return
		case <-ticker.C:
			gl.tick()
		}
	}
}

// Stop shuts down the game loop. It is safe to call more than once.
func (gl *GameLoop) Stop() {
	gl.stopOnce.Do(func() { close(gl.stopCh) })
}

// Step runs a single tick synchronously. Offline runners drive the loop
// with it instead of Run.
func (gl *GameLoop) Step() {
	gl.tick()
}

func (gl *GameLoop) tick() {
	// Drain all pending input events
	for {
		select {
		case ev := <-gl.inputCh:
			gl.processInput(ev)
		default:
			goto drained
		}
	}
drained:

	gl.tickCount++

	gl.mu.Lock()
	for _, p := range gl.players {
		p.TickNotice()
	}
	gl.mu.Unlock()

	gl.broadcast(gl.snapshot())
}

func (gl *GameLoop) snapshot() GameState {
	gl.mu.RLock()
	defer gl.mu.RUnlock()

	state := GameState{
		Players: make([]PlayerSnapshot, 0, len(gl.players)),
		Maps:    gl.world.Maps,
		Tick:    gl.tickCount,
	}
	for _, p := range gl.players {
		state.Players = append(state.Players, p.Snapshot())
	}
	return state
}

func (gl *GameLoop) broadcast(state GameState) {
	gl.mu.RLock()
	defer gl.mu.RUnlock()

	// Non-blocking send to each render channel
	for _, ch := range gl.renderChans {
		select {
		case ch <- state:
		default:
			// Drop frame for slow client
		}
	}
}

func (gl *GameLoop) processInput(ev InputEvent) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	player, ok := gl.players[ev.PlayerID]
	if !ok {
		return
	}
	m := gl.world.GetMap(player.MapName)
	if m == nil {
		return
	}
	gl.movement.Apply(player, ev.Action, m, StepSeconds)
}
