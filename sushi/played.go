package sushi

import "sushigo-lite/card"

// PlayedCards is the multiset of cards this client played in the current round.
type PlayedCards map[card.Card]int

func (p PlayedCards) Add(cards ...card.Card) {
	for _, c := range cards {
		p[c]++
	}
}

// Remove drops one copy of c; it reports false if none was present.
func (p PlayedCards) Remove(c card.Card) bool {
	if p[c] == 0 {
		return false
	}
	p[c]--
	if p[c] == 0 {
		delete(p, c)
	}
	return true
}

func (p PlayedCards) Contains(c card.Card) bool {
	return p[c] > 0
}

func (p PlayedCards) Count(c card.Card) int {
	return p[c]
}

func (p PlayedCards) Len() int {
	n := 0
	for _, v := range p {
		n += v
	}
	return n
}

func (p PlayedCards) Clear() {
	for c := range p {
		delete(p, c)
	}
}

// HasUnusedWasabi: a Wasabi was played and no nigiri has been played this round.
func (p PlayedCards) HasUnusedWasabi() bool {
	if !p.Contains(card.CardWasabi) {
		return false
	}
	return !p.Contains(card.CardEggNigiri) && !p.Contains(card.CardSalmonNigiri) && !p.Contains(card.CardSquidNigiri)
}

// HasChopsticks: a played Chopsticks is still on the table.
func (p PlayedCards) HasChopsticks() bool {
	return p.Contains(card.CardChopsticks)
}
