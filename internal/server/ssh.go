package server

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gliderlabs/ssh"

	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/render"
)

// SSHServer wraps the SSH listener and game loop integration.
type SSHServer struct {
	gameLoop *game.GameLoop
	scene    *render.Scene
	addr     string
	hostKey  string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, gl *game.GameLoop, scene *render.Scene) *SSHServer {
	return &SSHServer{
		gameLoop: gl,
		scene:    scene,
		addr:     addr,
		hostKey:  hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	// Register with game loop (username = identity)
	playerID, renderCh := s.gameLoop.AddPlayer(username)

	log.Printf("Player connected: %s (%s)", username, playerID)
	defer func() {
		s.gameLoop.RemovePlayer(playerID)
		log.Printf("Player disconnected: %s (%s)", username, playerID)
	}()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)
	var view *canvas.Canvas

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	quitCh := make(chan struct{})
	go s.readInput(sess, playerID, quitCh)

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	// Main render loop: read from render channel
	for {
		select {
		case <-quitCh:
			return
		case state, ok := <-renderCh:
			if !ok {
				return
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			// one canvas pixel per half block
			cols, rows := render.ViewSize(w, h)
			if view == nil || view.Width() != cols || view.Height() != rows*2 {
				view = canvas.New(cols, rows*2)
			}

			self, ok := s.scene.DrawState(view, state, playerID)
			if !ok {
				continue
			}

			output := engine.Render(view, render.HUDFor(self, len(state.Players)), w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// readInput forwards key presses to the game loop until the client quits
// or the connection drops, then closes quitCh.
func (s *SSHServer) readInput(r io.Reader, playerID string, quitCh chan struct{}) {
	defer close(quitCh)

	inputCh := s.gameLoop.InputChan()
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, action := range game.ParseInput(buf[:n]) {
			if action == game.ActionQuit {
				return
			}
			select {
			case inputCh <- game.InputEvent{PlayerID: playerID, Action: action}:
			default:
			}
		}
	}
}
