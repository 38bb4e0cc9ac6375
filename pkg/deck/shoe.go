package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/rng"
)

// ErrEndOfShoe is an error when Draw() is attempted and there are no more cards
var ErrEndOfShoe = errors.New("end of shoe reached")

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// Shoe is one or more decks dealt from the top.
// The top of the shoe is the end of Cards.
type Shoe struct {
	Cards []Card `json:"-"`
	decks int
	rng   rng.Generator
}

// NewShoe returns a shoe holding the given number of decks.
// Important! the shoe is unshuffled. You must call Shuffle() before dealing.
func NewShoe(decks int, gen rng.Generator) *Shoe {
	if decks < 1 {
		panic("a shoe needs at least one deck")
	}

	if gen == nil {
		gen = rng.Crypto{}
	}

	s := &Shoe{
		decks: decks,
		rng:   gen,
	}

	s.build()
	return s
}

// Stack returns a shoe that deals cards in the order given.
// This should only be used by tests.
func Stack(cards ...Card) *Shoe {
	s := &Shoe{
		decks: 1,
		rng:   rng.Crypto{},
		Cards: make([]Card, len(cards)),
	}

	for i, card := range cards {
		s.Cards[len(cards)-1-i] = card
	}

	return s
}

func (s *Shoe) build() {
	cards := make([]Card, 0, s.decks*CardsPerDeck)
	for i := 0; i < s.decks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, Card{Rank: rank, Suit: suit})
			}
		}
	}

	s.Cards = cards
}

// Shuffle rebuilds the full shoe and shuffles it.
// Cards already dealt are returned to the shoe first.
func (s *Shoe) Shuffle() {
	s.build()
	rng.Shuffle(s.rng, len(s.Cards), func(i, j int) {
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	})
}

// Decks returns the number of decks in the shoe
func (s *Shoe) Decks() int {
	return s.decks
}

// HashCode returns a SHA1 hash code of the remaining cards.
func (s *Shoe) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range s.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw removes and returns the top card
// If there are no more cards, an ErrEndOfShoe is returned.
func (s *Shoe) Draw() (Card, error) {
	n := len(s.Cards)
	if n == 0 {
		return Card{}, ErrEndOfShoe
	}

	card := s.Cards[n-1]
	s.Cards = s.Cards[:n-1]

	return card, nil
}

// CardsLeft returns the number of cards left in the shoe
func (s *Shoe) CardsLeft() int {
	return len(s.Cards)
}
