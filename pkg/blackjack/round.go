package blackjack

import (
	"fmt"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
	"github.com/sirupsen/logrus"
)

// dealerStandsOn is the total the dealer stops drawing at, soft or hard
const dealerStandsOn = 17

// PlaceBet adds to the caller's bet.
// The amount is clamped to the table maximum and to the caller's money; a clamp to zero is a no-op.
func (t *Table) PlaceBet(c Caller, amount int) Result {
	return t.apply("bet", c, func() (bool, error) {
		if t.phase != PhaseBetting {
			return false, wrongPhase(t.phase)
		}

		s, err := t.seatFor(c)
		if err != nil {
			return false, err
		}

		if amount <= 0 {
			return false, ErrInvalidAmount
		}

		delta := min(amount, t.options.MaxBet-s.Bet, s.Money)
		if delta <= 0 {
			return false, nil
		}

		s.Money -= delta
		s.Bet += delta
		t.addLog(s, nil, "%s bet %d", s.Name, delta)

		return true, nil
	})
}

// StartGame deals a new round and moves the table from BETTING to PLAY
func (t *Table) StartGame(c Caller) Result {
	return t.apply("start", c, func() (bool, error) {
		if !t.isPrivileged(c) {
			return false, ErrNotPrivileged
		}

		if t.phase != PhaseBetting {
			return false, wrongPhase(t.phase)
		}

		t.resetRound()
		t.phase = PhasePlay
		shoeHash := t.shoe.HashCode()

		seats := t.occupied()
		for i := 0; i < 2; i++ {
			for _, s := range seats {
				s.Hand.AddCard(t.draw())
			}

			t.dealer.AddCard(t.draw())
		}

		for _, s := range seats {
			if IsBlackjack(s.Hand) {
				s.finish()
				t.addLog(s, s.Hand.Clone(), "%s has blackjack", s.Name)
			}
		}

		t.logger.WithFields(logrus.Fields{
			"seats":    len(seats),
			"shoeSize": t.shoe.CardsLeft(),
			"shoeHash": shoeHash,
		}).Info("round started")
		t.addLog(nil, nil, "Cards dealt")

		t.advanceTurn()
		return true, nil
	})
}

// Hit deals one card to the active seat
func (t *Table) Hit(c Caller) Result {
	return t.apply("hit", c, func() (bool, error) {
		s, err := t.activeSeatFor(c)
		if err != nil {
			return false, err
		}

		card := t.draw()
		s.Hand.AddCard(card)
		t.addLog(s, []deck.Card{card}, "%s hits", s.Name)

		if IsBust(s.Hand) {
			s.finish()
			t.addLog(s, nil, "%s busts with %d", s.Name, Score(s.Hand))
			t.advanceTurn()
		}

		return true, nil
	})
}

// Stand ends the active seat's turn
func (t *Table) Stand(c Caller) Result {
	return t.apply("stand", c, func() (bool, error) {
		s, err := t.activeSeatFor(c)
		if err != nil {
			return false, err
		}

		s.finish()
		t.addLog(s, nil, "%s stands on %d", s.Name, Score(s.Hand))
		t.advanceTurn()

		return true, nil
	})
}

// DoubleDown doubles the active seat's bet, deals exactly one card and ends the turn.
// The extra stake is clamped like a bet; a clamp to zero is a no-op.
func (t *Table) DoubleDown(c Caller) Result {
	return t.apply("double", c, func() (bool, error) {
		s, err := t.activeSeatFor(c)
		if err != nil {
			return false, err
		}

		if len(s.Hand) != 2 || s.Bet <= 0 {
			return false, ErrCannotDouble
		}

		extra := min(s.Bet, t.options.MaxBet-s.Bet, s.Money)
		if extra <= 0 {
			return false, nil
		}

		s.Money -= extra
		s.Bet += extra

		card := t.draw()
		s.Hand.AddCard(card)
		s.finish()
		t.addLog(s, []deck.Card{card}, "%s doubles down to %d", s.Name, s.Bet)

		t.advanceTurn()
		return true, nil
	})
}

// Split is not supported and is always rejected
func (t *Table) Split(c Caller) Result {
	return t.apply("split", c, func() (bool, error) {
		return false, ErrSplitUnsupported
	})
}

// NewBets clears the round and returns the table to BETTING.
// Bets still on the table from the betting phase are returned to their seats.
func (t *Table) NewBets(c Caller) Result {
	return t.apply("newBets", c, func() (bool, error) {
		if !t.isPrivileged(c) {
			return false, ErrNotPrivileged
		}

		if t.phase == PhasePlay {
			return false, wrongPhase(t.phase)
		}

		for _, s := range t.occupied() {
			s.Money += s.Bet
			s.Bet = 0
		}

		t.resetRound()
		t.phase = PhaseBetting
		t.addLog(nil, nil, "Place your bets")
		t.logger.Info("betting opened")

		return true, nil
	})
}

// activeSeatFor returns the caller's seat if it's their turn
func (t *Table) activeSeatFor(c Caller) (*Seat, error) {
	if t.phase != PhasePlay {
		return nil, wrongPhase(t.phase)
	}

	s, err := t.seatFor(c)
	if err != nil {
		return nil, err
	}

	if s != t.active || !s.canPlay() {
		return nil, ErrNotYourTurn
	}

	return s, nil
}

// resetRound clears every hand and rebuilds the shoe
// NOTE: must only be called while holding the table lock
func (t *Table) resetRound() {
	t.dealer = nil
	for _, s := range t.occupied() {
		s.clearHand()
	}

	t.active = nil
	t.finished = false
	t.shoe = t.newShoe()
}

// advanceTurn moves the turn to the lowest unfinished seat.
// When every seat is finished the dealer plays and the round is settled.
// NOTE: must only be called while holding the table lock
func (t *Table) advanceTurn() {
	t.active = nil
	for _, s := range t.seats {
		if s != nil && !s.Finished {
			t.active = s
			return
		}
	}

	t.playDealer()
	t.finished = true
	t.phase = PhaseSettlement
	t.settle()

	t.logger.WithField("dealer", t.dealer.String()).Info("round settled")
}

// playDealer draws for the dealer until it reaches dealerStandsOn
func (t *Table) playDealer() {
	for Score(t.dealer) < dealerStandsOn {
		t.dealer.AddCard(t.draw())
	}

	t.addLog(nil, t.dealer.Clone(), "Dealer has %d", Score(t.dealer))
}

// draw takes the top card of the shoe.
// Options.validate guarantees a round never needs more cards than the shoe holds.
func (t *Table) draw() deck.Card {
	card, err := t.shoe.Draw()
	if err != nil {
		panic(fmt.Sprintf("inconsistent state found, shoe empty with %d decks", t.shoe.Decks()))
	}

	return card
}
