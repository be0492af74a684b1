package internal

// Message is the one-object-per-frame wire envelope, discriminated by Type.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data,omitempty"`
}

// Client -> room message types.
const (
	TypeJoin          = "join"
	TypeStart         = "start"
	TypeSubmit        = "submit"
	TypeRetract       = "retract"
	TypeRestartReq    = "restart_request"
	TypeRestartCancel = "restart_cancel"
	TypeReset         = "reset"
	TypePing          = "ping"
)

// Room -> client message types.
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeError   = "error"
	TypePong    = "pong"
)

type JoinData struct {
	PlayerName string `json:"playerName"`
}

type StartData struct {
	WinCondition string `json:"winCondition,omitempty"`
}

type SubmitData struct {
	Word string `json:"word"`
}

type WelcomeData struct {
	PlayerId string `json:"playerId"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// PlayerView is the per-player slice of the canonical state broadcast. It
// never exposes the submitted word itself while a round is open.
type PlayerView struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// StateData is the canonical room state fanned out to every live connection
// after each mutation. The rendering layer consumes it verbatim.
type StateData struct {
	Phase        Phase        `json:"phase"`
	Players      []PlayerView `json:"players"`
	RoundHistory []RoundEntry `json:"roundHistory"`
	RestartVotes []string     `json:"restartVotes"`
	Config       RoomConfig   `json:"config"`
}
