package session

// Phase is the orchestrator's position in the connection lifecycle.
type Phase byte

const (
	PhaseConnecting Phase = iota
	PhaseJoining
	PhaseAwaitingReady
	PhasePlaying
	PhaseEnded
)

var PhaseDictionary = map[Phase]string{
	PhaseConnecting:    "Connecting",
	PhaseJoining:       "Joining",
	PhaseAwaitingReady: "AwaitingReady",
	PhasePlaying:       "Playing",
	PhaseEnded:         "Ended",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return "Unknown"
}
