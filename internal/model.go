package internal

const (
	MinPlayersToStart = 2
	MaxNameLength     = 20
	FallbackName      = "Anonymous"
)

type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
)

type WinCondition string

const (
	WinExact    WinCondition = "exact"
	WinMajority WinCondition = "majority"
)

// ValidWinCondition reports whether s names one of the two resolution modes.
func ValidWinCondition(s string) bool {
	return WinCondition(s) == WinExact || WinCondition(s) == WinMajority
}

type RoomConfig struct {
	WinCondition WinCondition `json:"winCondition"`
}

// RoundSubmission is one player's word as captured at resolution time.
type RoundSubmission struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Word string `json:"word"`
}

// RoundEntry is the recorded outcome of one resolved round. WinningWord is
// null for rounds that did not end the game.
type RoundEntry struct {
	Submissions []RoundSubmission `json:"submissions"`
	Won         bool              `json:"won"`
	WinningWord *string           `json:"winningWord"`
}

// RoomState is the single persisted entity per room. It is owned exclusively
// by that room's handler loop; nothing else ever mutates it.
type RoomState struct {
	Phase              Phase             `json:"phase"`
	PlayerNames        map[string]string `json:"playerNames"`
	PlayerSubmitted    map[string]bool   `json:"playerSubmitted"`
	CurrentSubmissions map[string]string `json:"currentSubmissions"`
	UsedWords          map[string]bool   `json:"usedWords"`
	RoundHistory       []RoundEntry      `json:"roundHistory"`
	RestartVotes       map[string]bool   `json:"restartVotes"`
	Config             RoomConfig        `json:"config"`
}

// NewRoomState returns the lazily-created lobby defaults for a room that has
// never been addressed before.
func NewRoomState() *RoomState {
	return &RoomState{
		Phase:              PhaseLobby,
		PlayerNames:        make(map[string]string),
		PlayerSubmitted:    make(map[string]bool),
		CurrentSubmissions: make(map[string]string),
		UsedWords:          make(map[string]bool),
		RoundHistory:       make([]RoundEntry, 0),
		RestartVotes:       make(map[string]bool),
		Config:             RoomConfig{WinCondition: WinExact},
	}
}
