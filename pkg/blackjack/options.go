package blackjack

import (
	"fmt"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
)

// cardsPerHand is the per-hand allowance used to size the shoe.
// It is not a hard maximum, a multi-deck hand can hold many more aces.
// A hand stops drawing once its low total passes 21, so a round draws at most 31 points per hand,
// far less than the value of a shoe that holds 12 cards per hand.
const cardsPerHand = 12

// Options contains options for creating a table
type Options struct {
	Seats         int
	Decks         int
	StartingMoney int
	MaxBet        int
	MaxMoney      int

	// LoopbackPrivileged grants host actions to callers on the loopback address
	LoopbackPrivileged bool
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		Seats:              5,
		Decks:              6,
		StartingMoney:      1000,
		MaxBet:             2000,
		MaxMoney:           1000000,
		LoopbackPrivileged: true,
	}
}

// validate ensures the shoe can never run dry within a round
func (o Options) validate() error {
	if o.Seats < 1 {
		return fmt.Errorf("seats must be > 0, got %d", o.Seats)
	}

	if o.MaxBet < 1 {
		return fmt.Errorf("max bet must be > 0, got %d", o.MaxBet)
	}

	if o.StartingMoney < 0 || o.StartingMoney > o.MaxMoney {
		return fmt.Errorf("starting money must be within 0..%d, got %d", o.MaxMoney, o.StartingMoney)
	}

	if need := (o.Seats + 1) * cardsPerHand; o.Decks*deck.CardsPerDeck < need {
		return fmt.Errorf("%d deck(s) cannot cover a round for %d seats", o.Decks, o.Seats)
	}

	return nil
}
