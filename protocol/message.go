package protocol

import "sushigo-lite/card"

// Kind classifies an inbound server line.
type Kind byte

const (
	KindUnknown    Kind = 0
	KindWelcome    Kind = 1
	KindError      Kind = 2
	KindHand       Kind = 3
	KindRoundStart Kind = 4
	KindPlayed     Kind = 5
	KindRoundEnd   Kind = 6
	KindGameEnd    Kind = 7
	KindWaiting    Kind = 8
	KindOK         Kind = 9
)

var KindDictionary = map[Kind]string{
	KindUnknown:    "UNKNOWN",
	KindWelcome:    "WELCOME",
	KindError:      "ERROR",
	KindHand:       "HAND",
	KindRoundStart: "ROUND_START",
	KindPlayed:     "PLAYED",
	KindRoundEnd:   "ROUND_END",
	KindGameEnd:    "GAME_END",
	KindWaiting:    "WAITING",
	KindOK:         "OK",
}

var kindsByPrefix = func() map[string]Kind {
	m := make(map[string]Kind, len(KindDictionary))
	for k, prefix := range KindDictionary {
		if k != KindUnknown {
			m[prefix] = k
		}
	}
	return m
}()

func (k Kind) String() string {
	if s, ok := KindDictionary[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Slot is one "<index>:<name>" pair of a HAND payload.
type Slot struct {
	Index int
	Name  string
	Card  card.Card
}

// Message is a decoded inbound line. Only the fields of its Kind are set.
type Message struct {
	Kind Kind
	Raw  string

	GameID   string // WELCOME
	PlayerID int    // WELCOME
	Reason   string // ERROR
	Slots    []Slot // HAND
	Round    int    // ROUND_START
	Text     string // OK, trailing text if any
}

// Hand returns the HAND cards in slot order.
func (m Message) Hand() card.Hand {
	if len(m.Slots) == 0 {
		return card.Hand{}
	}
	out := make(card.Hand, 0, len(m.Slots))
	for _, s := range m.Slots {
		out = append(out, s.Card)
	}
	return out
}
