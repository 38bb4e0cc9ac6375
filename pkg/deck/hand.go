package deck

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a copy of the hand
// A nil hand clones to an empty one so it encodes as [] rather than null.
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
