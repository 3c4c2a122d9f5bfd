package npc

import (
	"fmt"

	"sushigo-lite/sushi"
)

// PlayTurn asks brain for a move on the current hand and commits the chosen
// cards to state. Decision.OK is false when the hand is empty.
func PlayTurn(state *sushi.State, brain BrainDecider) (Decision, error) {
	d := brain.Decide(state)
	if !d.OK {
		return d, nil
	}
	if err := state.Commit(d.Action); err != nil {
		return Decision{}, fmt.Errorf("%s rule %s: %w", brain.Name(), d.Rule, err)
	}
	return d, nil
}
