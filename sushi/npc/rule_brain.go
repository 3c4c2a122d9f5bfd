package npc

import (
	"math/rand"

	"sushigo-lite/sushi"
)

// RuleBrain plays by an ordered cascade of guarded rules; the first rule whose
// guard holds decides the turn.
type RuleBrain struct {
	rules []Rule
	rng   *rand.Rand
}

// NewRuleBrain creates a RuleBrain with the default cascade. The seed only
// drives the last-resort random pick.
func NewRuleBrain(seed int64) *RuleBrain {
	return NewRuleBrainWithRules(DefaultRules(), seed)
}

func NewRuleBrainWithRules(rules []Rule, seed int64) *RuleBrain {
	return &RuleBrain{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return string(BrainRule) }

// Decide implements BrainDecider.
func (b *RuleBrain) Decide(state *sushi.State) Decision {
	if state == nil || len(state.Hand) == 0 {
		return Decision{}
	}
	ctx := &ruleContext{
		state: state,
		hand:  state.Hand,
		n:     len(state.Hand),
		start: state.StartingHandSize,
		rng:   b.rng,
	}
	for _, r := range b.rules {
		if action, ok := r.Apply(ctx); ok {
			return Decision{Action: action, Rule: r.Name(), OK: true}
		}
	}
	return Decision{}
}
