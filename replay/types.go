package replay

const CurrentTapeVersion = 1

// Direction says whether a line was received from or sent to the server.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ReplayTape is everything needed to re-run a session's decisions offline.
type ReplayTape struct {
	TapeVersion int           `json:"tape_version"`
	SessionID   string        `json:"session_id"`
	GameID      string        `json:"game_id,omitempty"`
	PlayerName  string        `json:"player_name,omitempty"`
	Brain       string        `json:"brain"`
	Seed        int64         `json:"seed"`
	Events      []ReplayEvent `json:"events"`
}

type ReplayEvent struct {
	Seq       uint64    `json:"seq"`
	Direction Direction `json:"direction"`
	Line      string    `json:"line"`
	AtMs      int64     `json:"at_ms,omitempty"`
}
