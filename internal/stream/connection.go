package stream

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	sendChanSize = 4
)

type outbound struct {
	kind int // websocket.TextMessage or websocket.BinaryMessage
	data []byte
}

// connection wraps a WebSocket so exactly one goroutine reads and one writes.
type connection struct {
	ws   *websocket.Conn
	send chan outbound
}

func newConnection(ws *websocket.Conn) *connection {
	return &connection{
		ws:   ws,
		send: make(chan outbound, sendChanSize),
	}
}

// queue hands a message to the write pump. It reports false, dropping the
// message, when the pump is behind.
func (c *connection) queue(kind int, data []byte) bool {
	select {
	case c.send <- outbound{kind: kind, data: data}:
		return true
	default:
		return false
	}
}

// readPump delivers text messages to handle until the socket fails or
// handle returns false.
func (c *connection) readPump(handle func([]byte) bool) {
	defer c.ws.Close()

	for {
		kind, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading message: %v", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		if !handle(message) {
			return
		}
	}
}

// writePump writes queued messages until send is closed.
func (c *connection) writePump() {
	defer c.ws.Close()

	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		w, err := c.ws.NextWriter(msg.kind)
		if err != nil {
			return
		}
		if _, err := w.Write(msg.data); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}

	// Channel closed, say goodbye
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
