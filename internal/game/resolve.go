package game

import (
	"sort"

	"github.com/unisonhq/unison-backend/internal"
	"github.com/unisonhq/unison-backend/internal/logger"
)

// =============================================================================
// ROUND RESOLUTION
// =============================================================================

// resolveRound closes the current round: evaluates the win condition over the
// recorded submissions, appends the round to history, merges the words into
// the used set, and either ends the game or rolls straight into the next
// round. Close handling purges orphaned submissions before this runs, so
// every recorded entry has a name on file.
func (r *Room) resolveRound(st *internal.RoomState) {
	won, winningWord := evaluateWin(st.Config.WinCondition, st.CurrentSubmissions)

	ids := make([]string, 0, len(st.CurrentSubmissions))
	for id := range st.CurrentSubmissions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entry := internal.RoundEntry{
		Submissions: make([]internal.RoundSubmission, 0, len(ids)),
		Won:         won,
	}
	for _, id := range ids {
		word := st.CurrentSubmissions[id]
		entry.Submissions = append(entry.Submissions, internal.RoundSubmission{
			Id:   id,
			Name: st.PlayerNames[id],
			Word: word,
		})
		st.UsedWords[word] = true
	}
	if won {
		entry.WinningWord = &winningWord
	}
	st.RoundHistory = append(st.RoundHistory, entry)

	if won {
		// Leave the final round's submissions visible as the game record.
		st.Phase = internal.PhaseWon
		logger.Infof("[resolveRound] room=%s: round %d won with %q",
			r.code, len(st.RoundHistory), winningWord)
	} else {
		// No reveal pause; the next round opens immediately.
		st.CurrentSubmissions = make(map[string]string)
		for _, id := range r.liveIds() {
			st.PlayerSubmitted[id] = false
		}
		logger.Infof("[resolveRound] room=%s: round %d missed, next round open",
			r.code, len(st.RoundHistory))
	}

	r.persist(st)
	r.broadcastState(st)
}

// evaluateWin applies the configured win condition to one round's
// submissions, keyed by player id.
//
// exact: a win iff there are at least two submissions and all words match.
//
// majority: a win iff some word's count strictly exceeds half the submission
// count. Ties at the top count break toward the word first encountered while
// scanning submissions in ascending player-id order; the scan order is part
// of the contract, not an accident of map iteration.
func evaluateWin(mode internal.WinCondition, subs map[string]string) (bool, string) {
	if len(subs) < 2 {
		return false, ""
	}

	ids := make([]string, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	switch mode {
	case internal.WinMajority:
		counts := make(map[string]int)
		order := make([]string, 0, len(ids))
		for _, id := range ids {
			word := subs[id]
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
		best, bestCount := "", 0
		for _, word := range order {
			if counts[word] > bestCount {
				best, bestCount = word, counts[word]
			}
		}
		if bestCount*2 > len(subs) {
			return true, best
		}
		return false, ""

	default: // exact
		first := subs[ids[0]]
		for _, id := range ids[1:] {
			if subs[id] != first {
				return false, ""
			}
		}
		return true, first
	}
}
