package replay

import (
	"errors"
	"fmt"
	"strings"

	"sushigo-lite/protocol"
	"sushigo-lite/sushi"
	"sushigo-lite/sushi/npc"
)

// BrainFactory rebuilds the recorded strategy from its name and seed.
type BrainFactory func(kind string, seed int64) (npc.BrainDecider, error)

// DefaultBrainFactory resolves brains through npc.NewBrain.
func DefaultBrainFactory(kind string, seed int64) (npc.BrainDecider, error) {
	k, err := npc.ParseBrainKind(kind)
	if err != nil {
		return nil, err
	}
	return npc.NewBrain(k, seed)
}

// VerifyTape re-runs the tape's inbound lines through a fresh state and brain
// and checks that every PLAY/CHOPSTICKS the brain makes matches what was sent.
func VerifyTape(tape *ReplayTape, factory BrainFactory) error {
	if tape == nil {
		return &ReplayError{StepIndex: -1, Reason: "invalid_tape", Message: "nil tape"}
	}
	if factory == nil {
		factory = DefaultBrainFactory
	}
	brain, err := factory(tape.Brain, tape.Seed)
	if err != nil {
		return &ReplayError{StepIndex: -1, Reason: "brain_init_failed", Message: err.Error()}
	}

	var sent []string
	var sentSteps []int32
	for i, e := range tape.Events {
		if e.Direction == DirectionOut && isPlayLine(e.Line) {
			sent = append(sent, e.Line)
			sentSteps = append(sentSteps, int32(i))
		}
	}

	var state *sushi.State
	next := 0
	for i, e := range tape.Events {
		if e.Direction != DirectionIn {
			continue
		}
		msg, err := protocol.Decode(e.Line)
		if err != nil {
			var de *protocol.DecodeError
			if errors.Is(err, protocol.ErrEmptyLine) || errors.As(err, &de) {
				continue
			}
			return &ReplayError{StepIndex: int32(i), Reason: "decode_failed", Message: err.Error()}
		}
		if state == nil {
			if msg.Kind == protocol.KindWelcome {
				state = sushi.NewState(msg.GameID, msg.PlayerID)
			}
			continue
		}

		stop := state.Apply(msg)
		if msg.Kind == protocol.KindHand && len(state.Hand) > 0 {
			d, err := npc.PlayTurn(state, brain)
			if err != nil {
				return &ReplayError{StepIndex: int32(i), Reason: "decision_failed", Message: err.Error()}
			}
			if d.OK {
				got := d.Action.Command().String()
				if next >= len(sent) {
					return &ReplayError{
						StepIndex: int32(i),
						Reason:    "extra_command",
						Message:   fmt.Sprintf("brain played %q but the tape has no further plays", got),
						Got:       got,
					}
				}
				if sent[next] != got {
					return &ReplayError{
						StepIndex: sentSteps[next],
						Reason:    "command_mismatch",
						Message:   fmt.Sprintf("rule %s chose a different move", d.Rule),
						Expected:  sent[next],
						Got:       got,
					}
				}
				next++
			}
		}
		if stop {
			break
		}
	}

	if next < len(sent) {
		return &ReplayError{
			StepIndex: sentSteps[next],
			Reason:    "missing_command",
			Message:   fmt.Sprintf("%d recorded plays were not reproduced", len(sent)-next),
			Expected:  sent[next],
		}
	}
	return nil
}

func isPlayLine(line string) bool {
	return strings.HasPrefix(line, "PLAY ") || strings.HasPrefix(line, "CHOPSTICKS ")
}
