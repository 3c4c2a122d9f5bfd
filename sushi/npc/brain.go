package npc

import "sushigo-lite/sushi"

// Decision is what a BrainDecider returns.
type Decision struct {
	Action sushi.Action
	// Rule names the rule that produced the action, for logs and the journal.
	Rule string
	// OK is false when there was nothing to play.
	OK bool
}

// BrainDecider is the interface every strategy implements.
type BrainDecider interface {
	// Decide is called once per received hand. It may update the per-round
	// counters and flags of state to record what it commits to.
	Decide(state *sushi.State) Decision
	// Name returns a human-readable identifier for debugging.
	Name() string
}
