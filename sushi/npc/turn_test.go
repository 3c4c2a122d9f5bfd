package npc

import (
	"errors"
	"testing"

	"sushigo-lite/card"
	"sushigo-lite/sushi"
)

type fixedBrain struct{ action sushi.Action }

func (b fixedBrain) Name() string { return "fixed" }

func (b fixedBrain) Decide(*sushi.State) Decision {
	return Decision{Action: b.action, Rule: "fixed", OK: true}
}

func TestPlayTurnCommitsChosenCards(t *testing.T) {
	s := newState(8,
		card.CardWasabi, card.CardTempura, card.CardDumpling,
		card.CardSashimi, card.CardSquidNigiri, card.CardMakiRoll1)

	d, err := PlayTurn(s, NewRuleBrain(1))
	if err != nil {
		t.Fatalf("PlayTurn err: %v", err)
	}
	if !d.OK || d.Action.First != 0 {
		t.Fatalf("decision = %+v", d)
	}
	if !s.Played.Contains(card.CardWasabi) || !s.UnusedWasabi {
		t.Fatalf("wasabi not committed: played=%v", s.Played)
	}
}

func TestPlayTurnEmptyHand(t *testing.T) {
	d, err := PlayTurn(newState(8), NewRuleBrain(1))
	if err != nil || d.OK {
		t.Fatalf("expected no decision, got %+v err=%v", d, err)
	}
}

func TestPlayTurnRejectsOutOfBoundsBrain(t *testing.T) {
	s := newState(8, card.CardTempura)
	_, err := PlayTurn(s, fixedBrain{action: sushi.PlaySingle(3)})
	if !errors.Is(err, sushi.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if s.Played.Len() != 0 {
		t.Fatalf("invalid move was committed")
	}
}
