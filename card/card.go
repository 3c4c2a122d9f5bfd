package card

import (
	"fmt"
	"strings"
)

// Card is one of the fixed set of sushi cards named by the protocol.
type Card byte

func (c Card) String() string {
	if name, ok := cardNames[c]; ok {
		return name
	}
	return "Unknown"
}

// IsNigiri reports whether c is Egg, Salmon or Squid Nigiri.
func (c Card) IsNigiri() bool {
	return c == CardEggNigiri || c == CardSalmonNigiri || c == CardSquidNigiri
}

// Valid reports whether c is part of the vocabulary.
func (c Card) Valid() bool {
	_, ok := cardNames[c]
	return ok
}

// Parse converts a protocol card name (e.g. "Maki Roll (2)") into a Card.
// Surrounding whitespace is ignored; matching is case-sensitive like the server.
func Parse(name string) (Card, error) {
	if c, ok := cardsByName[strings.TrimSpace(name)]; ok {
		return c, nil
	}
	return CardUnknown, fmt.Errorf("unknown card name: %q", name)
}

// All returns every card of the vocabulary in declaration order.
func All() []Card {
	out := make([]Card, 0, len(cardNames))
	for c := CardTempura; c <= CardChopsticks; c++ {
		out = append(out, c)
	}
	return out
}
