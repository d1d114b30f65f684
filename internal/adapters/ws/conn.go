package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hectorjsiilva/impostor-game/internal/game"
)

var ErrBackpressure = errors.New("backpressure")

// Frame is one serialized event on the wire.
type Frame []byte

// Envelope is the wire shape of every event: a type tag clients dispatch on
// plus the event payload.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Conn wraps one websocket with a buffered outbound channel. TrySend never
// blocks; a full buffer drops the frame for this recipient only.
type Conn struct {
	id   string
	sock *websocket.Conn
	send chan Frame

	mu     sync.RWMutex
	closed bool
}

func newConn(id string, sock *websocket.Conn) *Conn {
	return &Conn{
		id:   id,
		sock: sock,
		send: make(chan Frame, 32),
	}
}

func (c *Conn) TrySend(f Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.sock.Close()
	c.mu.Unlock()
}

var _ game.Broadcaster = (*Hub)(nil)
