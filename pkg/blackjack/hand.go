package blackjack

import "github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"

// value is the base value of a card. Aces count 11.
func value(card deck.Card) int {
	switch {
	case card.Rank == deck.Ace:
		return 11
	case card.Rank >= 10:
		return 10
	}

	return int(card.Rank)
}

// Score returns the blackjack total of the hand.
// Aces count 11 until the total would exceed 21, then they drop to 1 one at a time.
func Score(hand deck.Hand) int {
	total := 0
	softAces := 0
	for _, card := range hand {
		total += value(card)
		if card.Rank == deck.Ace {
			softAces++
		}
	}

	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}

	return total
}

// IsBlackjack returns true for a two-card 21
func IsBlackjack(hand deck.Hand) bool {
	return len(hand) == 2 && Score(hand) == 21
}

// IsBust returns true if the hand is over 21
func IsBust(hand deck.Hand) bool {
	return Score(hand) > 21
}
