package sushi

import (
	"fmt"

	"sushigo-lite/card"
	"sushigo-lite/protocol"
)

// ActionKind tags the Action variant: 1-PLAY 2-CHOPSTICKS
type ActionKind byte

const (
	ActionNone           ActionKind = 0
	ActionPlaySingle     ActionKind = 1
	ActionPlayChopsticks ActionKind = 2
)

var ActionKindDictionary = map[ActionKind]string{
	ActionNone:           "NONE",
	ActionPlaySingle:     "PLAY",
	ActionPlayChopsticks: "CHOPSTICKS",
}

func (k ActionKind) String() string {
	if s, ok := ActionKindDictionary[k]; ok {
		return s
	}
	return "NONE"
}

// Action is what the client sends for a turn: one slot, or two slots via chopsticks.
type Action struct {
	Kind   ActionKind
	First  int
	Second int
}

func PlaySingle(index int) Action {
	return Action{Kind: ActionPlaySingle, First: index}
}

func PlayChopsticks(first, second int) Action {
	return Action{Kind: ActionPlayChopsticks, First: first, Second: second}
}

// Indices returns the hand slots the action plays.
func (a Action) Indices() []int {
	switch a.Kind {
	case ActionPlaySingle:
		return []int{a.First}
	case ActionPlayChopsticks:
		return []int{a.First, a.Second}
	default:
		return nil
	}
}

// ValidFor reports whether every slot exists in h and chopsticks slots are distinct.
func (a Action) ValidFor(h card.Hand) bool {
	switch a.Kind {
	case ActionPlaySingle:
		return h.Valid(a.First)
	case ActionPlayChopsticks:
		return a.First != a.Second && h.Valid(a.First) && h.Valid(a.Second)
	default:
		return false
	}
}

// Command converts the action into its wire command.
func (a Action) Command() protocol.Command {
	if a.Kind == ActionPlayChopsticks {
		return protocol.Chopsticks(a.First, a.Second)
	}
	return protocol.Play(a.First)
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlaySingle:
		return fmt.Sprintf("PLAY %d", a.First)
	case ActionPlayChopsticks:
		return fmt.Sprintf("CHOPSTICKS %d %d", a.First, a.Second)
	default:
		return "NONE"
	}
}

// Counters holds how many cards of each set-collection kind this client has
// committed to. Pudding survives round resets; the rest are per round.
type Counters struct {
	Dumpling int
	Sashimi  int
	Tempura  int
	Pudding  int
}

// Get returns the counter for c, or 0 for untracked cards.
func (c *Counters) Get(k card.Card) int {
	if p := c.slot(k); p != nil {
		return *p
	}
	return 0
}

// Add increments the counter for k by n. Untracked cards are ignored.
func (c *Counters) Add(k card.Card, n int) {
	if p := c.slot(k); p != nil {
		*p += n
	}
}

// ResetRound zeroes the per-round counters and carries Pudding forward.
func (c *Counters) ResetRound() {
	*c = Counters{Pudding: c.Pudding}
}

func (c *Counters) slot(k card.Card) *int {
	switch k {
	case card.CardDumpling:
		return &c.Dumpling
	case card.CardSashimi:
		return &c.Sashimi
	case card.CardTempura:
		return &c.Tempura
	case card.CardPudding:
		return &c.Pudding
	default:
		return nil
	}
}
