// Package stream serves the game to browsers: an embedded viewer page and a
// WebSocket that carries raw RGBA frames out and key presses in.
package stream

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/render"
)

//go:embed index.html
var indexHTML []byte

const (
	DefaultWidth  = 320
	DefaultHeight = 200
)

// Hello is the first message on every socket.
type Hello struct {
	Type     string `json:"type"`
	PlayerID string `json:"player"`
	Map      string `json:"map"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Server streams frames to WebSocket viewers.
type Server struct {
	gameLoop *game.GameLoop
	scene    *render.Scene
	width    int
	height   int
	upgrader websocket.Upgrader
}

// NewServer creates a stream server rendering width x height frames.
func NewServer(gl *game.GameLoop, scene *render.Scene, width, height int) *Server {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &Server{
		gameLoop: gl,
		scene:    scene,
		width:    width,
		height:   height,
		upgrader: websocket.Upgrader{
			// The viewer is served from the same host; other origins are
			// allowed so the page can also be opened from a file.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: the viewer page on / and the socket on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("WebSocket viewer listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Viewer"
	}

	playerID, renderCh := s.gameLoop.AddPlayer(name)
	log.Printf("Viewer connected: %s (%s) from %s", name, playerID, ws.RemoteAddr())
	defer func() {
		s.gameLoop.RemovePlayer(playerID)
		log.Printf("Viewer disconnected: %s (%s)", name, playerID)
	}()

	conn := newConnection(ws)
	go conn.writePump()
	defer close(conn.send)

	self, _ := s.gameLoop.Player(playerID)
	hello, err := json.Marshal(Hello{
		Type:     "hello",
		PlayerID: playerID,
		Map:      self.MapName,
		Width:    s.width,
		Height:   s.height,
	})
	if err != nil {
		log.Printf("Error marshaling hello: %v", err)
		return
	}
	conn.queue(websocket.TextMessage, hello)

	done := make(chan struct{})
	go func() {
		defer close(done)
		inputCh := s.gameLoop.InputChan()
		conn.readPump(func(msg []byte) bool {
			for _, action := range game.ParseInput(msg) {
				if action == game.ActionQuit {
					return false
				}
				select {
				case inputCh <- game.InputEvent{PlayerID: playerID, Action: action}:
				default:
				}
			}
			return true
		})
	}()

	view := canvas.New(s.width, s.height)
	var sent canvas.ChangeTracker
	for {
		select {
		case <-done:
			return
		case state, ok := <-renderCh:
			if !ok {
				return
			}
			if _, ok := s.scene.DrawState(view, state, playerID); !ok {
				continue
			}
			if !sent.Changed(view) {
				continue
			}
			if !conn.queue(websocket.BinaryMessage, sent.Last()) {
				// dropped; resend on the next tick
				sent.Reset()
			}
		}
	}
}
