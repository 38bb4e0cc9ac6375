package blackjack

import (
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
	"github.com/sirupsen/logrus"
)

// Outcome is how a seat's hand finished against the dealer
type Outcome string

// Outcome constants
const (
	OutcomeNone      Outcome = ""
	OutcomeBust      Outcome = "bust"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
)

// Payout returns the outcome and the amount credited for a finished hand.
// The payout includes the returned stake: a win pays 2x the bet, a push 1x and a
// natural blackjack floor(2.5x).
func Payout(player, dealer deck.Hand, bet int) (Outcome, int) {
	playerScore := Score(player)
	dealerScore := Score(dealer)

	switch {
	case playerScore > 21:
		return OutcomeBust, 0
	case dealerScore > 21:
		return OutcomeWin, bet * 2
	case IsBlackjack(player) && !IsBlackjack(dealer):
		return OutcomeBlackjack, bet * 5 / 2
	case IsBlackjack(dealer) && !IsBlackjack(player):
		return OutcomeLose, 0
	case playerScore > dealerScore:
		return OutcomeWin, bet * 2
	case playerScore < dealerScore:
		return OutcomeLose, 0
	}

	return OutcomePush, bet
}

// settle pays every seat and resets bets
// NOTE: must only be called while holding the table lock
func (t *Table) settle() {
	for _, s := range t.occupied() {
		outcome, payout := Payout(s.Hand, t.dealer, s.Bet)
		s.Outcome = outcome
		s.Money = clamp(s.Money+payout, 0, t.options.MaxMoney)

		t.logger.WithFields(logrus.Fields{
			"seat":    s.Index,
			"bet":     s.Bet,
			"payout":  payout,
			"outcome": outcome,
		}).Debug("settled seat")

		if s.Bet > 0 {
			t.addLog(s, nil, "%s: %s, paid %d", s.Name, outcome, payout)
		}

		s.Bet = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
