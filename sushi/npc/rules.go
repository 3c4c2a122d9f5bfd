package npc

import (
	"math/rand"

	"sushigo-lite/card"
	"sushigo-lite/sushi"
)

// Rule is one guarded step of the RuleBrain cascade. Apply returns ok=false
// when its guard does not hold; a rule that matches may have updated state.
type Rule interface {
	Name() string
	Apply(ctx *ruleContext) (sushi.Action, bool)
}

type ruleContext struct {
	state *sushi.State
	hand  card.Hand
	n     int // cards left in hand
	start int // starting hand size
	rng   *rand.Rand
}

// moreThanHalf is n > start/2, kept in integers.
func (c *ruleContext) moreThanHalf() bool { return 2*c.n > c.start }

// atLeastHalf is n >= start/2.
func (c *ruleContext) atLeastHalf() bool { return 2*c.n >= c.start }

// moreThanTwoThirds is n > 2*start/3.
func (c *ruleContext) moreThanTwoThirds() bool { return 3*c.n > 2*c.start }

type guardedRule struct {
	name  string
	apply func(ctx *ruleContext) (sushi.Action, bool)
}

func (r guardedRule) Name() string { return r.name }

func (r guardedRule) Apply(ctx *ruleContext) (sushi.Action, bool) { return r.apply(ctx) }

const largeHand = 5

var (
	wasabiLargeHandTargets = []card.Card{card.CardSquidNigiri, card.CardSalmonNigiri}
	nigiriPreference       = []card.Card{card.CardSquidNigiri, card.CardSalmonNigiri, card.CardEggNigiri}
	setCards               = []card.Card{card.CardDumpling, card.CardSashimi, card.CardTempura}
	fallbackPriority       = []card.Card{
		card.CardSquidNigiri,
		card.CardSalmonNigiri,
		card.CardEggNigiri,
		card.CardMakiRoll3,
		card.CardMakiRoll2,
		card.CardMakiRoll1,
		card.CardPudding,
	}
)

// DefaultRules returns the cascade in evaluation order. Reordering changes
// which card is played.
func DefaultRules() []Rule {
	return []Rule{
		guardedRule{"acquire_wasabi", acquireWasabi},
		guardedRule{"acquire_chopsticks", acquireChopsticks},
		guardedRule{"spend_wasabi_large", spendWasabiLarge},
		guardedRule{"spend_wasabi_small", spendWasabiSmall},
		guardedRule{"chopsticks_combo", chopsticksCombo},
		guardedRule{"set_building", setBuilding},
		guardedRule{"fallback_priority", fallbackByPriority},
		guardedRule{"random_fallback", randomFallback},
	}
}

func acquireWasabi(ctx *ruleContext) (sushi.Action, bool) {
	if ctx.state.UnusedWasabi || ctx.n <= largeHand {
		return sushi.Action{}, false
	}
	if i := ctx.hand.Index(card.CardWasabi); i >= 0 {
		return sushi.PlaySingle(i), true
	}
	return sushi.Action{}, false
}

func acquireChopsticks(ctx *ruleContext) (sushi.Action, bool) {
	if ctx.state.Chopsticks || ctx.n <= largeHand {
		return sushi.Action{}, false
	}
	if i := ctx.hand.Index(card.CardChopsticks); i >= 0 {
		return sushi.PlaySingle(i), true
	}
	return sushi.Action{}, false
}

func spendWasabiLarge(ctx *ruleContext) (sushi.Action, bool) {
	if !ctx.state.UnusedWasabi || ctx.n <= largeHand {
		return sushi.Action{}, false
	}
	return spendWasabi(ctx, wasabiLargeHandTargets)
}

func spendWasabiSmall(ctx *ruleContext) (sushi.Action, bool) {
	if !ctx.state.UnusedWasabi || ctx.n > largeHand {
		return sushi.Action{}, false
	}
	return spendWasabi(ctx, nigiriPreference)
}

func spendWasabi(ctx *ruleContext, prefs []card.Card) (sushi.Action, bool) {
	_, i, ok := ctx.hand.FirstOf(prefs...)
	if !ok {
		return sushi.Action{}, false
	}
	ctx.state.UnusedWasabi = false
	return sushi.PlaySingle(i), true
}

func chopsticksCombo(ctx *ruleContext) (sushi.Action, bool) {
	if !ctx.state.Chopsticks {
		return sushi.Action{}, false
	}

	if w := ctx.hand.Index(card.CardWasabi); w >= 0 {
		if _, i, ok := ctx.hand.FirstOf(nigiriPreference...); ok {
			ctx.state.Chopsticks = false
			return sushi.PlayChopsticks(w, i), true
		}
	}

	for _, c := range setCards {
		pair := ctx.hand.IndicesOf(c, 2)
		if len(pair) < 2 {
			continue
		}
		count := ctx.state.Counters.Get(c)
		switch c {
		case card.CardDumpling:
			if count > 3 || (count == 0 && ctx.moreThanHalf()) {
				continue
			}
		case card.CardSashimi:
			if count != 0 || !ctx.moreThanTwoThirds() {
				continue
			}
		}
		ctx.state.Counters.Add(c, 2)
		ctx.state.Chopsticks = false
		return sushi.PlayChopsticks(pair[0], pair[1]), true
	}
	return sushi.Action{}, false
}

func setBuilding(ctx *ruleContext) (sushi.Action, bool) {
	counters := &ctx.state.Counters

	if i := ctx.hand.Index(card.CardDumpling); i >= 0 && counters.Dumpling <= 4 {
		// Starting a dumpling run early in the round is deferred.
		if !(counters.Dumpling == 0 && ctx.moreThanHalf()) {
			counters.Dumpling++
			return sushi.PlaySingle(i), true
		}
	}

	if i := ctx.hand.Index(card.CardSashimi); i >= 0 && counters.Sashimi == 2 {
		return sushi.PlaySingle(i), true
	}

	if i := ctx.hand.Index(card.CardTempura); i >= 0 && ctx.atLeastHalf() {
		next := counters.Tempura + 1
		if !(next%2 == 0 && ctx.n < 4) {
			counters.Tempura = next
			return sushi.PlaySingle(i), true
		}
	}
	return sushi.Action{}, false
}

func fallbackByPriority(ctx *ruleContext) (sushi.Action, bool) {
	c, i, ok := ctx.hand.FirstOf(fallbackPriority...)
	if !ok {
		return sushi.Action{}, false
	}
	if c == card.CardPudding {
		ctx.state.Counters.Pudding++
	}
	return sushi.PlaySingle(i), true
}

func randomFallback(ctx *ruleContext) (sushi.Action, bool) {
	if ctx.n == 0 {
		return sushi.Action{}, false
	}
	return sushi.PlaySingle(ctx.rng.Intn(ctx.n)), true
}
