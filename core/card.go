package core

// Suits in deal order.
var Suits = []string{"♤", "♡", "♢", "♧"}

// Ranks in deal order.
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// DeckSize is the number of cards in a fresh shoe
const DeckSize = 52

// Card represents a single playing card
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MaskedCard is shown in place of the dealer's hole card until the round resolves
var MaskedCard = Card{Rank: "?", Suit: "?"}

// IsAce reports whether the card is an ace
func (c Card) IsAce() bool {
	return c.Rank == "A"
}

// Points returns the card's provisional blackjack value, counting an ace as 11
func (c Card) Points() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return int(c.Rank[0] - '0')
	}
	panic(InvariantViolation{Reason: "unknown rank " + c.Rank})
}

func (c Card) String() string {
	return c.Rank + c.Suit
}
