package game

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/unisonhq/unison-backend/internal/logger"
	"github.com/unisonhq/unison-backend/internal/store"
)

// =============================================================================
// HUB - ROOM REGISTRY & WEBSOCKET ENTRY
// =============================================================================

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maps room codes to running room actors. Rooms never share mutable
// state; the hub only hands connections to the right inbox.
type Hub struct {
	store store.Store

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewHub(st store.Store) *Hub {
	return &Hub{
		store: st,
		rooms: make(map[string]*Room),
	}
}

// HandleWebSocket upgrades the HTTP request and binds the connection to the
// room named in the URL. The connection tag assigned here is the player's
// identity for exactly as long as the socket lives.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["roomCode"])
	if code == "" {
		http.Error(w, "room code required", http.StatusBadRequest)
		return
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("[HandleWebSocket] room=%s: upgrade failed: %v", code, err)
		return
	}

	conn := NewConn(uuid.NewString(), sock)
	room := h.attach(code, conn)
	if room == nil {
		conn.Close()
		return
	}

	readPump(room, conn, sock)
}

// attach looks up or spins up the room actor and enqueues the connect event,
// all under the registry lock so a room draining to empty can never lose a
// newcomer.
func (h *Hub) attach(code string, c *Conn) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[code]
	if !ok {
		room = newRoom(code, h, h.store)
		h.rooms[code] = room
		go room.run()
	}

	select {
	case room.inbox <- event{kind: connectEvent, conn: c}:
		return room
	default:
		// Inbox saturated; refuse the connection rather than block the
		// registry behind a wedged room.
		logger.Errorf("[attach] room=%s: inbox full, refusing connection", code)
		return nil
	}
}

// release drops an empty room from the registry. It fails when a connect
// event raced in since the room went empty, and the actor keeps running.
func (h *Hub) release(r *Room) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(r.inbox) > 0 {
		return false
	}
	delete(h.rooms, r.code)
	return true
}

// RoomCount reports how many rooms currently have an actor running.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// readPump forwards frames from the socket into the room inbox until the
// transport reports close or error; both land in the same close path.
func readPump(room *Room, c *Conn, sock *websocket.Conn) {
	defer func() {
		c.Close()
		room.inbox <- event{kind: closeEvent, conn: c}
	}()

	for {
		_, raw, err := sock.ReadMessage()
		if err != nil {
			logger.Debugf("[readPump] room=%s conn=%s: read ended: %v", room.code, c.Id, err)
			return
		}
		room.inbox <- event{kind: messageEvent, conn: c, raw: raw}
	}
}
