package internal

import "sort"

// Methods (RoomState)

// RemovePlayer erases every trace of a departed connection. Identity is tied
// to the connection lifetime, so nothing about the player survives its close.
func (s *RoomState) RemovePlayer(id string) {
	delete(s.PlayerNames, id)
	delete(s.PlayerSubmitted, id)
	delete(s.CurrentSubmissions, id)
	delete(s.RestartVotes, id)
}

// AllSubmitted reports whether every id in live has its submitted flag set.
// An id with no entry counts as not submitted.
func (s *RoomState) AllSubmitted(live []string) bool {
	for _, id := range live {
		if !s.PlayerSubmitted[id] {
			return false
		}
	}
	return true
}

// NamedOf filters live down to the ids that have a name on file.
func (s *RoomState) NamedOf(live []string) []string {
	named := make([]string, 0, len(live))
	for _, id := range live {
		if _, ok := s.PlayerNames[id]; ok {
			named = append(named, id)
		}
	}
	return named
}

// RestartVoteComplete reports whether a vote is in progress and every live
// named connection has cast it. The named set must be non-empty.
func (s *RoomState) RestartVoteComplete(live []string) bool {
	if len(s.RestartVotes) == 0 {
		return false
	}
	named := s.NamedOf(live)
	if len(named) == 0 {
		return false
	}
	for _, id := range named {
		if !s.RestartVotes[id] {
			return false
		}
	}
	return true
}

// StartFreshGame wipes the game back to a first round for exactly the live
// named connections. Config carries over unchanged.
func (s *RoomState) StartFreshGame(live []string) {
	names := make(map[string]string)
	submitted := make(map[string]bool)
	for _, id := range live {
		if name, ok := s.PlayerNames[id]; ok {
			names[id] = name
			submitted[id] = false
		}
	}
	s.Phase = PhasePlaying
	s.PlayerNames = names
	s.PlayerSubmitted = submitted
	s.CurrentSubmissions = make(map[string]string)
	s.UsedWords = make(map[string]bool)
	s.RoundHistory = make([]RoundEntry, 0)
	s.RestartVotes = make(map[string]bool)
}

// ResetToLobby returns the room to lobby defaults after the last connection
// closes. Only the configured win condition survives.
func (s *RoomState) ResetToLobby() {
	cfg := s.Config
	*s = *NewRoomState()
	s.Config = cfg
}

// Snapshot builds the canonical state broadcast. Players and votes are sorted
// by id so consumers see a stable order.
func (s *RoomState) Snapshot() StateData {
	players := make([]PlayerView, 0, len(s.PlayerNames))
	for id, name := range s.PlayerNames {
		players = append(players, PlayerView{
			Id:        id,
			Name:      name,
			Submitted: s.PlayerSubmitted[id],
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Id < players[j].Id })

	votes := make([]string, 0, len(s.RestartVotes))
	for id := range s.RestartVotes {
		votes = append(votes, id)
	}
	sort.Strings(votes)

	history := s.RoundHistory
	if history == nil {
		history = make([]RoundEntry, 0)
	}

	return StateData{
		Phase:        s.Phase,
		Players:      players,
		RoundHistory: history,
		RestartVotes: votes,
		Config:       s.Config,
	}
}
