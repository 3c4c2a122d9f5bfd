package npc

import (
	"math/rand"

	"sushigo-lite/sushi"
)

// RandomBrain plays a uniformly random slot every turn. Useful as a baseline.
type RandomBrain struct {
	rng *rand.Rand
}

func NewRandomBrain(seed int64) *RandomBrain {
	return &RandomBrain{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBrain) Name() string { return string(BrainRandom) }

func (b *RandomBrain) Decide(state *sushi.State) Decision {
	if state == nil || len(state.Hand) == 0 {
		return Decision{}
	}
	return Decision{
		Action: sushi.PlaySingle(b.rng.Intn(len(state.Hand))),
		Rule:   "random",
		OK:     true,
	}
}
