package sushi

import (
	"fmt"

	"sushigo-lite/card"
	"sushigo-lite/protocol"
)

// State is the client's local mirror of the game. It is owned by a single
// goroutine and mutated in place by Apply, Commit and the decision rules.
type State struct {
	GameID   string
	PlayerID int

	Round int
	Turn  int

	Hand   card.Hand
	Played PlayedCards

	// StartingHandSize is the length of the first hand of the game.
	StartingHandSize int

	UnusedWasabi bool
	Chopsticks   bool

	Counters Counters
}

// NewState creates the mirror after a successful join.
func NewState(gameID string, playerID int) *State {
	return &State{
		GameID:   gameID,
		PlayerID: playerID,
		Round:    1,
		Turn:     1,
		Hand:     card.Hand{},
		Played:   PlayedCards{},
	}
}

// Apply updates the mirror from one decoded server message. It reports true
// when the game has ended and the caller should stop.
func (s *State) Apply(msg protocol.Message) bool {
	switch msg.Kind {
	case protocol.KindHand:
		s.applyHand(msg.Hand())
	case protocol.KindRoundStart:
		s.Round = msg.Round
		s.Turn = 1
		s.Played.Clear()
	case protocol.KindPlayed:
		s.Turn++
	case protocol.KindRoundEnd:
		s.Played.Clear()
	case protocol.KindGameEnd:
		return true
	}
	return false
}

// applyHand treats a hand longer than the stored one as a new round: the server
// never says which HAND opens a round, only that hands shrink within one.
func (s *State) applyHand(hand card.Hand) {
	if len(hand) > len(s.Hand) {
		s.Played.Clear()
		s.Counters.ResetRound()
	}
	s.Hand = hand
	if s.StartingHandSize == 0 {
		s.StartingHandSize = len(hand)
	}
	s.refreshFlags()
}

func (s *State) refreshFlags() {
	s.UnusedWasabi = s.Played.HasUnusedWasabi()
	s.Chopsticks = s.Played.HasChopsticks()
}

// Commit records the cards of a chosen action as played, before the server
// acknowledges it. A chopsticks play returns one Chopsticks to the hand.
func (s *State) Commit(a Action) error {
	if len(s.Hand) == 0 {
		return ErrNoHand
	}
	if !a.ValidFor(s.Hand) {
		return fmt.Errorf("%w: %s with %d cards", ErrInvalidAction, a, len(s.Hand))
	}
	for _, i := range a.Indices() {
		s.Played.Add(s.Hand[i])
	}
	if a.Kind == ActionPlayChopsticks {
		s.Played.Remove(card.CardChopsticks)
	}
	s.refreshFlags()
	return nil
}

// CardsOf returns the cards an action would play from the current hand.
func (s *State) CardsOf(a Action) []card.Card {
	out := make([]card.Card, 0, 2)
	for _, i := range a.Indices() {
		if s.Hand.Valid(i) {
			out = append(out, s.Hand[i])
		}
	}
	return out
}
