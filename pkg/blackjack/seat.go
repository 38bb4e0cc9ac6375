package blackjack

import (
	"strings"
	"unicode/utf8"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/util"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
)

// maxNameLength is the longest display name, in characters
const maxNameLength = 10

// Seat is an occupied seat at the table
type Seat struct {
	Index    int
	Identity string
	Name     string
	Money    int
	Bet      int
	Hand     deck.Hand
	Stood    bool
	Finished bool
	Outcome  Outcome
}

func newSeat(index int, identity, name string, money int) *Seat {
	return &Seat{
		Index:    index,
		Identity: identity,
		Name:     name,
		Money:    money,
	}
}

// finish marks the seat as done for the round
func (s *Seat) finish() {
	s.Stood = true
	s.Finished = true
}

// clearHand resets the per-round state
func (s *Seat) clearHand() {
	s.Hand = nil
	s.Stood = false
	s.Finished = false
	s.Outcome = OutcomeNone
}

// canPlay returns true if the seat may still hit, stand or double
func (s *Seat) canPlay() bool {
	return !s.Finished && !s.Stood
}

// cleanName trims the name and limits it to maxNameLength characters.
// An empty name is replaced with a random one.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:maxNameLength]))
	}

	return name
}
