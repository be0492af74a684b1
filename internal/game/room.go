package game

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/unisonhq/unison-backend/internal"
	"github.com/unisonhq/unison-backend/internal/logger"
	"github.com/unisonhq/unison-backend/internal/store"
)

// =============================================================================
// ROOM ACTOR
// =============================================================================

type eventKind int

const (
	connectEvent eventKind = iota
	messageEvent
	closeEvent
)

type event struct {
	kind eventKind
	conn *Conn
	raw  []byte
}

// Room is one independent game instance. A single goroutine (run) owns the
// connection registry and the persisted state; every inbound event is
// processed end to end before the next one starts, so handlers never race.
type Room struct {
	code  string
	hub   *Hub
	store store.Store
	ctx   context.Context

	inbox chan event

	// conns is touched only by the run goroutine.
	conns map[string]*Conn
}

func newRoom(code string, hub *Hub, st store.Store) *Room {
	return &Room{
		code:  code,
		hub:   hub,
		store: st,
		ctx:   context.Background(),
		inbox: make(chan event, 256),
		conns: make(map[string]*Conn),
	}
}

func (r *Room) run() {
	logger.Infof("[run] room=%s: actor started", r.code)
	for ev := range r.inbox {
		switch ev.kind {
		case connectEvent:
			r.handleConnect(ev.conn)
		case messageEvent:
			r.handleMessage(ev.conn, ev.raw)
		case closeEvent:
			if r.handleClose(ev.conn) {
				logger.Infof("[run] room=%s: actor stopped", r.code)
				return
			}
		}
	}
}

func (r *Room) handleConnect(c *Conn) {
	r.conns[c.Id] = c
	logger.Infof("[handleConnect] room=%s conn=%s: connected (%d live)",
		r.code, c.Id, len(r.conns))
}

// handleMessage parses and dispatches one inbound frame. A parse failure is
// dropped silently; ping is answered before any state is loaded; unknown
// types are no-ops.
func (r *Room) handleMessage(c *Conn, raw []byte) {
	var msg internal.Message[json.RawMessage]
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Debugf("[handleMessage] room=%s conn=%s: dropping unparseable frame: %v",
			r.code, c.Id, err)
		return
	}

	if msg.Type == internal.TypePing {
		r.reply(c, internal.Message[struct{}]{Type: internal.TypePong})
		return
	}

	st, err := r.loadState()
	if err != nil {
		logger.Errorf("[handleMessage] room=%s: load failed, dropping %q: %v",
			r.code, msg.Type, err)
		return
	}

	switch msg.Type {
	case internal.TypeJoin:
		r.handleJoin(st, c, msg.Data)
	case internal.TypeStart:
		r.handleStart(st, c, msg.Data)
	case internal.TypeSubmit:
		r.handleSubmit(st, c, msg.Data)
	case internal.TypeRetract:
		r.handleRetract(st, c)
	case internal.TypeRestartReq:
		r.handleRestartRequest(st, c)
	case internal.TypeRestartCancel:
		r.handleRestartCancel(st, c)
	case internal.TypeReset:
		r.handleReset(st, c)
	default:
		logger.Debugf("[handleMessage] room=%s conn=%s: unknown type %q",
			r.code, c.Id, msg.Type)
	}
}

// handleClose runs the close procedure for a departed connection. A transport
// error callback takes exactly this path too. Returns true when the room is
// empty and has been released from the hub, which stops the actor.
func (r *Room) handleClose(c *Conn) bool {
	if _, ok := r.conns[c.Id]; !ok {
		return false
	}
	delete(r.conns, c.Id)
	logger.Infof("[handleClose] room=%s conn=%s: closed (%d live)",
		r.code, c.Id, len(r.conns))

	st, err := r.loadState()
	if err != nil {
		logger.Errorf("[handleClose] room=%s: load failed: %v", r.code, err)
		return len(r.conns) == 0 && r.hub.release(r)
	}

	st.RemovePlayer(c.Id)
	live := r.liveIds()

	if len(live) == 0 {
		// Nobody left to tell; park the room back in the lobby.
		st.ResetToLobby()
		r.persist(st)
		return r.hub.release(r)
	}

	if st.Phase == internal.PhasePlaying && st.RestartVoteComplete(live) {
		// The departure completed the restart quorum.
		st.StartFreshGame(live)
		r.persist(st)
		r.broadcastState(st)
		return false
	}

	if st.Phase == internal.PhasePlaying && st.AllSubmitted(live) && len(st.CurrentSubmissions) > 0 {
		// The departing player was the last holdout.
		r.resolveRound(st)
		return false
	}

	r.persist(st)
	r.broadcastState(st)
	return false
}

// =============================================================================
// STATE ACCESS & FAN-OUT
// =============================================================================

func (r *Room) loadState() (*internal.RoomState, error) {
	blob, err := r.store.Get(r.ctx, r.code)
	if errors.Is(err, store.ErrNotFound) {
		return internal.NewRoomState(), nil
	}
	if err != nil {
		return nil, err
	}
	st := internal.NewRoomState()
	if err := json.Unmarshal(blob, st); err != nil {
		return nil, err
	}
	normalizeState(st)
	return st, nil
}

// normalizeState guards against nil maps in blobs written before a field
// existed.
func normalizeState(st *internal.RoomState) {
	if st.PlayerNames == nil {
		st.PlayerNames = make(map[string]string)
	}
	if st.PlayerSubmitted == nil {
		st.PlayerSubmitted = make(map[string]bool)
	}
	if st.CurrentSubmissions == nil {
		st.CurrentSubmissions = make(map[string]string)
	}
	if st.UsedWords == nil {
		st.UsedWords = make(map[string]bool)
	}
	if st.RestartVotes == nil {
		st.RestartVotes = make(map[string]bool)
	}
	if st.RoundHistory == nil {
		st.RoundHistory = make([]internal.RoundEntry, 0)
	}
}

func (r *Room) persist(st *internal.RoomState) {
	blob, err := json.Marshal(st)
	if err != nil {
		logger.Errorf("[persist] room=%s: marshal failed: %v", r.code, err)
		return
	}
	if err := r.store.Put(r.ctx, r.code, blob); err != nil {
		logger.Errorf("[persist] room=%s: put failed: %v", r.code, err)
	}
}

// broadcastState fans the canonical state out to every live connection. Each
// send is best effort; a dead recipient never blocks the rest or rolls back
// the mutation that triggered the broadcast.
func (r *Room) broadcastState(st *internal.RoomState) {
	msg := internal.Message[internal.StateData]{
		Type: internal.TypeState,
		Data: st.Snapshot(),
	}
	for id, c := range r.conns {
		if err := c.SafeWriteJSON(msg); err != nil {
			logger.Debugf("[broadcastState] room=%s conn=%s: send failed: %v",
				r.code, id, err)
		}
	}
}

func (r *Room) reply(c *Conn, msg any) {
	if err := c.SafeWriteJSON(msg); err != nil {
		logger.Debugf("[reply] room=%s conn=%s: send failed: %v", r.code, c.Id, err)
	}
}

func (r *Room) liveIds() []string {
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
