package game

import (
	"encoding/json"
	"fmt"

	"github.com/unisonhq/unison-backend/internal"
	"github.com/unisonhq/unison-backend/internal/logger"
)

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

// handleJoin seats a connection under a display name. Joining is valid in any
// phase; a re-join only renames and never clears an in-flight submission.
func (r *Room) handleJoin(st *internal.RoomState, c *Conn, data json.RawMessage) {
	var req internal.JoinData
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Debugf("[handleJoin] room=%s conn=%s: bad payload: %v", r.code, c.Id, err)
			return
		}
	}

	taken := make(map[string]bool, len(st.PlayerNames))
	for id, name := range st.PlayerNames {
		if id != c.Id {
			taken[name] = true
		}
	}
	name := DedupeName(NormalizeName(req.PlayerName), taken)

	st.PlayerNames[c.Id] = name
	if _, ok := st.PlayerSubmitted[c.Id]; !ok {
		st.PlayerSubmitted[c.Id] = false
	}

	logger.Infof("[handleJoin] room=%s conn=%s: joined as %q", r.code, c.Id, name)

	r.reply(c, internal.Message[internal.WelcomeData]{
		Type: internal.TypeWelcome,
		Data: internal.WelcomeData{PlayerId: c.Id},
	})
	r.persist(st)
	r.broadcastState(st)
}

// handleStart moves the lobby into the first round. Repeat starts while
// already playing are no-ops and never reshuffle state.
func (r *Room) handleStart(st *internal.RoomState, c *Conn, data json.RawMessage) {
	if st.Phase != internal.PhaseLobby {
		logger.Debugf("[handleStart] room=%s: ignored in phase %s", r.code, st.Phase)
		return
	}
	live := r.liveIds()
	if len(live) < internal.MinPlayersToStart {
		logger.Debugf("[handleStart] room=%s: only %d connected, need %d",
			r.code, len(live), internal.MinPlayersToStart)
		return
	}

	var req internal.StartData
	if len(data) > 0 {
		_ = json.Unmarshal(data, &req)
	}
	if internal.ValidWinCondition(req.WinCondition) {
		st.Config.WinCondition = internal.WinCondition(req.WinCondition)
	}

	st.Phase = internal.PhasePlaying
	st.CurrentSubmissions = make(map[string]string)
	for _, id := range live {
		st.PlayerSubmitted[id] = false
	}

	logger.Infof("[handleStart] room=%s: game started, %d players, mode=%s",
		r.code, len(live), st.Config.WinCondition)

	r.persist(st)
	r.broadcastState(st)
}

// handleSubmit records one word for the round. Reusing a word from a
// previously resolved round is the only rejection the player hears about;
// everything else invalid is dropped silently.
func (r *Room) handleSubmit(st *internal.RoomState, c *Conn, data json.RawMessage) {
	if st.Phase != internal.PhasePlaying {
		return
	}
	if st.PlayerSubmitted[c.Id] {
		return
	}
	if _, named := st.PlayerNames[c.Id]; !named {
		// Must join before submitting, otherwise the round record would
		// carry a nameless entry.
		return
	}

	var req internal.SubmitData
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	word := NormalizeWord(req.Word)
	if word == "" {
		return
	}

	if st.UsedWords[word] {
		// Same-round duplicates are the win signal; only words from earlier
		// rounds are off limits.
		logger.Infof("[handleSubmit] room=%s conn=%s: rejected reused word %q",
			r.code, c.Id, word)
		r.reply(c, internal.Message[internal.ErrorData]{
			Type: internal.TypeError,
			Data: internal.ErrorData{Message: fmt.Sprintf("%q has already been used this game", word)},
		})
		return
	}

	st.PlayerSubmitted[c.Id] = true
	st.CurrentSubmissions[c.Id] = word
	r.persist(st)

	if st.AllSubmitted(r.liveIds()) {
		r.resolveRound(st)
		return
	}
	r.broadcastState(st)
}

// handleRetract takes back an in-flight submission before the round resolves.
func (r *Room) handleRetract(st *internal.RoomState, c *Conn) {
	if st.Phase != internal.PhasePlaying {
		return
	}
	if _, ok := st.CurrentSubmissions[c.Id]; !ok {
		return
	}
	delete(st.CurrentSubmissions, c.Id)
	st.PlayerSubmitted[c.Id] = false

	logger.Infof("[handleRetract] room=%s conn=%s: submission retracted", r.code, c.Id)

	r.persist(st)
	r.broadcastState(st)
}

// =============================================================================
// VOTE CONSENSUS (restart / reset)
// =============================================================================

// handleRestartRequest adds the caller to the restart vote. When every live
// named connection has voted, the game wipes and restarts in place.
func (r *Room) handleRestartRequest(st *internal.RoomState, c *Conn) {
	if st.Phase != internal.PhasePlaying {
		return
	}
	if _, named := st.PlayerNames[c.Id]; !named {
		return
	}

	st.RestartVotes[c.Id] = true
	live := r.liveIds()

	if st.RestartVoteComplete(live) {
		logger.Infof("[handleRestartRequest] room=%s: vote unanimous, restarting", r.code)
		st.StartFreshGame(live)
		r.persist(st)
		r.broadcastState(st)
		return
	}

	logger.Infof("[handleRestartRequest] room=%s conn=%s: vote %d/%d",
		r.code, c.Id, len(st.RestartVotes), len(st.NamedOf(live)))
	r.persist(st)
	r.broadcastState(st)
}

// handleRestartCancel aborts a pending vote. Any participant can cancel, not
// only whoever proposed it.
func (r *Room) handleRestartCancel(st *internal.RoomState, c *Conn) {
	if st.Phase != internal.PhasePlaying {
		return
	}
	st.RestartVotes = make(map[string]bool)

	logger.Infof("[handleRestartCancel] room=%s conn=%s: vote cancelled", r.code, c.Id)

	r.persist(st)
	r.broadcastState(st)
}

// handleReset unilaterally starts a fresh game; its main job is leaving the
// won phase without a vote.
func (r *Room) handleReset(st *internal.RoomState, c *Conn) {
	logger.Infof("[handleReset] room=%s conn=%s: reset from phase %s", r.code, c.Id, st.Phase)

	st.StartFreshGame(r.liveIds())
	r.persist(st)
	r.broadcastState(st)
}
