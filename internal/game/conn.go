package game

import (
	"sync"
)

// socket is the transport a connection writes to. *websocket.Conn satisfies
// it; tests substitute an in-memory recorder.
type socket interface {
	WriteJSON(v any) error
	Close() error
}

// Conn is one live websocket connection inside a room. Its Id is the opaque
// connection tag handed out at connect time; the player's identity is exactly
// the lifetime of this connection.
type Conn struct {
	Id   string
	sock socket
	mu   sync.Mutex
}

func NewConn(id string, sock socket) *Conn {
	return &Conn{Id: id, sock: sock}
}

// SafeWriteJSON serializes writes so the room loop and the transport's own
// control frames never interleave a frame.
func (c *Conn) SafeWriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteJSON(v)
}

func (c *Conn) Close() {
	_ = c.sock.Close()
}
