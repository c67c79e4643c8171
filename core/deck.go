package core

import (
	"fmt"
	"math/rand/v2"
)

// IntN returns a random integer in [0, n). It must be safe for concurrent use.
type IntN func(n int) int

// DefaultIntN is the randomness source used when none is configured
var DefaultIntN IntN = rand.IntN

// Deck is the set of cards not yet dealt in the current round
type Deck []Card

// NewDeck returns the canonical 52-card set, rank by rank
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, rank := range Ranks {
		for _, suit := range Suits {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Draw removes n cards chosen uniformly at random without replacement.
// The receiver is left untouched; the undrawn cards are returned in their
// original order. Asking for more cards than remain panics with an
// InvariantViolation.
func (d Deck) Draw(intn IntN, n int) (Deck, Deck) {
	if n < 0 || n > len(d) {
		panic(InvariantViolation{Reason: fmt.Sprintf("draw %d from deck of %d", n, len(d))})
	}

	rest := make(Deck, len(d))
	copy(rest, d)
	drawn := make(Deck, 0, n)
	for i := 0; i < n; i++ {
		idx := intn(len(rest))
		drawn = append(drawn, rest[idx])
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return drawn, rest
}

// Contains reports whether the deck still holds the card
func (d Deck) Contains(c Card) bool {
	for _, card := range d {
		if card == c {
			return true
		}
	}
	return false
}
