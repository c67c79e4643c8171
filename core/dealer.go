package core

// DealerStandValue is the total at which the dealer stops drawing
const DealerStandValue = 17

// PlayDealer draws for the dealer one card at a time until the hand is worth
// at least 17. Running out of cards panics with an InvariantViolation.
func PlayDealer(dealer Hand, deck Deck, intn IntN) (Hand, Deck) {
	hand := append(Hand(nil), dealer...)
	for hand.Value() < DealerStandValue {
		if len(deck) == 0 {
			panic(InvariantViolation{Reason: "deck exhausted during dealer play"})
		}
		var drawn Deck
		drawn, deck = deck.Draw(intn, 1)
		hand = append(hand, drawn...)
	}
	return hand, deck
}
