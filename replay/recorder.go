package replay

import "time"

// Recorder appends session traffic to a tape. It is used from the session
// goroutine only.
type Recorder struct {
	tape ReplayTape
	now  func() time.Time
}

func NewRecorder(sessionID, brain string, seed int64) *Recorder {
	return &Recorder{
		tape: ReplayTape{
			TapeVersion: CurrentTapeVersion,
			SessionID:   sessionID,
			Brain:       brain,
			Seed:        seed,
			Events:      []ReplayEvent{},
		},
		now: time.Now,
	}
}

// SetGame records the join parameters.
func (r *Recorder) SetGame(gameID, playerName string) {
	r.tape.GameID = gameID
	r.tape.PlayerName = playerName
}

func (r *Recorder) In(line string) { r.add(DirectionIn, line) }

func (r *Recorder) Out(line string) { r.add(DirectionOut, line) }

func (r *Recorder) add(dir Direction, line string) {
	r.tape.Events = append(r.tape.Events, ReplayEvent{
		Seq:       uint64(len(r.tape.Events) + 1),
		Direction: dir,
		Line:      line,
		AtMs:      r.now().UnixMilli(),
	})
}

// Tape returns a copy of the tape recorded so far.
func (r *Recorder) Tape() *ReplayTape {
	out := r.tape
	out.Events = append([]ReplayEvent(nil), r.tape.Events...)
	return &out
}
