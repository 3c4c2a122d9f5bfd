package sushi

import (
	"errors"
	"testing"

	"sushigo-lite/card"
	"sushigo-lite/protocol"
)

func handMsg(t *testing.T, line string) protocol.Message {
	t.Helper()
	msg, err := protocol.Decode(line)
	if err != nil {
		t.Fatalf("Decode(%q) err: %v", line, err)
	}
	return msg
}

func TestApplyFirstHandSeedsStartingSize(t *testing.T) {
	s := NewState("g1", 1)
	s.Apply(handMsg(t, "HAND 0:Tempura 1:Wasabi 2:Dumpling 3:Pudding 4:Sashimi 5:Egg Nigiri 6:Chopsticks 7:Squid Nigiri"))

	if s.StartingHandSize != 8 {
		t.Fatalf("StartingHandSize = %d, want 8", s.StartingHandSize)
	}
	if len(s.Hand) != 8 || s.Hand[1] != card.CardWasabi {
		t.Fatalf("hand = %v", s.Hand.Names())
	}

	// A later, shorter hand must not reseed the starting size.
	s.Apply(handMsg(t, "HAND 0:Tempura 1:Wasabi"))
	if s.StartingHandSize != 8 {
		t.Fatalf("StartingHandSize reseeded to %d", s.StartingHandSize)
	}
}

func TestApplyHandGrowthResetsRound(t *testing.T) {
	s := NewState("g1", 1)
	s.Hand = card.Hand{card.CardTempura, card.CardSashimi, card.CardDumpling}
	s.StartingHandSize = 8
	s.Played.Add(card.CardWasabi, card.CardChopsticks, card.CardTempura)
	s.Counters = Counters{Dumpling: 2, Sashimi: 3, Tempura: 1, Pudding: 2}

	s.Apply(handMsg(t, "HAND 0:Tempura 1:Wasabi 2:Dumpling 3:Pudding 4:Sashimi 5:Egg Nigiri 6:Chopsticks 7:Squid Nigiri"))

	if s.Played.Len() != 0 {
		t.Fatalf("played not cleared: %v", s.Played)
	}
	want := Counters{Pudding: 2}
	if s.Counters != want {
		t.Fatalf("counters = %+v, want %+v", s.Counters, want)
	}
	if s.UnusedWasabi || s.Chopsticks {
		t.Fatalf("flags should be clear after round reset: wasabi=%v chopsticks=%v", s.UnusedWasabi, s.Chopsticks)
	}
	if len(s.Hand) != 8 {
		t.Fatalf("hand not replaced: %v", s.Hand.Names())
	}
}

func TestApplyShrinkingHandKeepsRoundMemory(t *testing.T) {
	s := NewState("g1", 1)
	s.Hand = card.Hand{card.CardTempura, card.CardSashimi, card.CardDumpling, card.CardPudding}
	s.Played.Add(card.CardWasabi)
	s.Counters.Dumpling = 1

	s.Apply(handMsg(t, "HAND 0:Tempura 1:Sashimi 2:Dumpling"))

	if !s.Played.Contains(card.CardWasabi) || s.Counters.Dumpling != 1 {
		t.Fatalf("round memory lost: played=%v counters=%+v", s.Played, s.Counters)
	}
	if !s.UnusedWasabi {
		t.Fatalf("expected unused wasabi to be recomputed as true")
	}
}

func TestApplyEqualLengthHandIsNotABoundary(t *testing.T) {
	s := NewState("g1", 1)
	s.Hand = card.Hand{card.CardTempura, card.CardSashimi}
	s.Counters.Tempura = 1

	s.Apply(handMsg(t, "HAND 0:Dumpling 1:Pudding"))
	if s.Counters.Tempura != 1 {
		t.Fatalf("equal length hand reset counters: %+v", s.Counters)
	}
}

func TestApplyRoundLifecycle(t *testing.T) {
	s := NewState("g1", 1)
	s.Played.Add(card.CardTempura)
	s.Counters.Pudding = 1

	if stop := s.Apply(handMsg(t, "PLAYED")); stop {
		t.Fatalf("PLAYED should not stop")
	}
	if s.Turn != 2 {
		t.Fatalf("turn = %d, want 2", s.Turn)
	}

	s.Apply(handMsg(t, "ROUND_END"))
	if s.Played.Len() != 0 {
		t.Fatalf("ROUND_END did not clear played")
	}

	s.Played.Add(card.CardDumpling)
	s.Apply(handMsg(t, "ROUND_START 2"))
	if s.Round != 2 || s.Turn != 1 || s.Played.Len() != 0 {
		t.Fatalf("after ROUND_START: round=%d turn=%d played=%v", s.Round, s.Turn, s.Played)
	}
	if s.Counters.Pudding != 1 {
		t.Fatalf("pudding counter lost across rounds: %d", s.Counters.Pudding)
	}

	for _, line := range []string{"WAITING", "OK", "SOMETHING_NEW 1 2"} {
		before := *s
		if s.Apply(handMsg(t, line)) {
			t.Fatalf("%s should not stop", line)
		}
		if s.Round != before.Round || s.Turn != before.Turn {
			t.Fatalf("%s changed state", line)
		}
	}

	if !s.Apply(handMsg(t, "GAME_END")) {
		t.Fatalf("GAME_END should stop")
	}
}

func TestWasabiLifecycle(t *testing.T) {
	s := NewState("g1", 1)
	s.Apply(handMsg(t, "HAND 0:Wasabi 1:Tempura 2:Dumpling 3:Sashimi 4:Squid Nigiri 5:Maki Roll (1)"))

	if err := s.Commit(PlaySingle(0)); err != nil {
		t.Fatalf("Commit err: %v", err)
	}
	s.Apply(handMsg(t, "HAND 0:Tempura 1:Dumpling 2:Sashimi 3:Squid Nigiri 4:Maki Roll (1)"))
	if !s.UnusedWasabi {
		t.Fatalf("expected unused wasabi after playing Wasabi")
	}

	if err := s.Commit(PlaySingle(3)); err != nil {
		t.Fatalf("Commit err: %v", err)
	}
	s.Apply(handMsg(t, "HAND 0:Tempura 1:Dumpling 2:Sashimi 3:Maki Roll (1)"))
	if s.UnusedWasabi {
		t.Fatalf("expected wasabi to be used after playing nigiri")
	}
}

func TestChopsticksLifecycle(t *testing.T) {
	s := NewState("g1", 1)
	s.Apply(handMsg(t, "HAND 0:Chopsticks 1:Tempura 2:Tempura 3:Dumpling 4:Sashimi 5:Pudding"))

	if err := s.Commit(PlaySingle(0)); err != nil {
		t.Fatalf("Commit err: %v", err)
	}
	s.Apply(handMsg(t, "HAND 0:Tempura 1:Tempura 2:Dumpling 3:Sashimi 4:Pudding"))
	if !s.Chopsticks {
		t.Fatalf("expected chopsticks to be held")
	}

	if err := s.Commit(PlayChopsticks(0, 1)); err != nil {
		t.Fatalf("Commit err: %v", err)
	}
	if s.Chopsticks {
		t.Fatalf("chopsticks should be consumed by a double play")
	}
	if s.Played.Count(card.CardTempura) != 2 {
		t.Fatalf("played = %v", s.Played)
	}
	s.Apply(handMsg(t, "HAND 0:Dumpling 1:Sashimi 2:Chopsticks"))
	if s.Chopsticks {
		t.Fatalf("chopsticks reappeared after HAND recompute")
	}
}

func TestCommitRejectsInvalidActions(t *testing.T) {
	s := NewState("g1", 1)
	if err := s.Commit(PlaySingle(0)); !errors.Is(err, ErrNoHand) {
		t.Fatalf("expected ErrNoHand, got %v", err)
	}
	s.Hand = card.Hand{card.CardTempura, card.CardSashimi}
	for _, a := range []Action{PlaySingle(2), PlaySingle(-1), PlayChopsticks(1, 1), PlayChopsticks(0, 5), {}} {
		if err := s.Commit(a); !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("Commit(%v) err = %v, want ErrInvalidAction", a, err)
		}
	}
	if s.Played.Len() != 0 {
		t.Fatalf("invalid commits mutated played: %v", s.Played)
	}
}

func TestActionCommandAndCards(t *testing.T) {
	s := NewState("g1", 1)
	s.Hand = card.Hand{card.CardWasabi, card.CardSquidNigiri}

	a := PlayChopsticks(0, 1)
	if a.Command().String() != "CHOPSTICKS 0 1" || a.String() != "CHOPSTICKS 0 1" {
		t.Fatalf("command = %q", a.Command().String())
	}
	cards := s.CardsOf(a)
	if len(cards) != 2 || cards[0] != card.CardWasabi || cards[1] != card.CardSquidNigiri {
		t.Fatalf("CardsOf = %v", cards)
	}
	if PlaySingle(1).Command().String() != "PLAY 1" {
		t.Fatalf("single command wrong")
	}
}

func TestCountersIgnoreUntrackedCards(t *testing.T) {
	var c Counters
	c.Add(card.CardWasabi, 3)
	c.Add(card.CardTempura, 2)
	if c.Get(card.CardWasabi) != 0 || c.Get(card.CardTempura) != 2 {
		t.Fatalf("counters = %+v", c)
	}
}
