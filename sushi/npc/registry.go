package npc

import (
	"fmt"
	"strings"
	"time"
)

// BrainKind selects a strategy by name.
type BrainKind string

const (
	BrainRule   BrainKind = "rule"
	BrainRandom BrainKind = "random"
)

// ParseBrainKind accepts the configured brain name case-insensitively.
func ParseBrainKind(raw string) (BrainKind, error) {
	switch BrainKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", BrainRule:
		return BrainRule, nil
	case BrainRandom:
		return BrainRandom, nil
	default:
		return "", fmt.Errorf("unknown brain %q (supported: %s, %s)", raw, BrainRule, BrainRandom)
	}
}

// ResolveSeed turns 0 into a time-based seed so callers can record the seed
// actually used.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewBrain builds the strategy for kind with an already resolved seed.
func NewBrain(kind BrainKind, seed int64) (BrainDecider, error) {
	switch kind {
	case BrainRule:
		return NewRuleBrain(seed), nil
	case BrainRandom:
		return NewRandomBrain(seed), nil
	default:
		return nil, fmt.Errorf("unknown brain kind: %q", kind)
	}
}
