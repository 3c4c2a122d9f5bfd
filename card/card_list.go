package card

// Hand is an ordered, index-addressable list of cards. The protocol addresses
// cards by slot, so order matters and duplicates are expected.
type Hand []Card

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return len(h)
}

// Index returns the first slot holding c, or -1.
func (h Hand) Index(c Card) int {
	for i, x := range h {
		if x == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is in the hand.
func (h Hand) Contains(c Card) bool {
	return h.Index(c) >= 0
}

// CountOf returns how many copies of c the hand holds.
func (h Hand) CountOf(c Card) int {
	n := 0
	for _, x := range h {
		if x == c {
			n++
		}
	}
	return n
}

// IndicesOf returns up to limit slots holding c, in hand order. limit <= 0 means all.
func (h Hand) IndicesOf(c Card, limit int) []int {
	var out []int
	for i, x := range h {
		if x != c {
			continue
		}
		out = append(out, i)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// FirstOf returns the first card of prefs present in the hand and its slot.
func (h Hand) FirstOf(prefs ...Card) (Card, int, bool) {
	for _, c := range prefs {
		if i := h.Index(c); i >= 0 {
			return c, i, true
		}
	}
	return CardUnknown, -1, false
}

// Clone returns a copy that does not share the backing array.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Names returns the protocol names of the cards in order.
func (h Hand) Names() []string {
	out := make([]string, 0, len(h))
	for _, c := range h {
		out = append(out, c.String())
	}
	return out
}

// Valid reports whether slot i exists in the hand.
func (h Hand) Valid(i int) bool {
	return i >= 0 && i < len(h)
}
