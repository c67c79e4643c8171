package core

// BlackjackValue is the best possible hand value
const BlackjackValue = 21

// Hand is the ordered list of cards held by the player or the dealer
type Hand []Card

// Value computes the blackjack value of the hand. Aces count 11 until the
// total passes 21, then drop to 1 one at a time.
func (h Hand) Value() int {
	total, _ := h.value()
	return total
}

// IsSoft reports whether an ace is still counted as 11
func (h Hand) IsSoft() bool {
	_, soft := h.value()
	return soft > 0
}

// IsBust reports whether the hand is over 21
func (h Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

func (h Hand) value() (total, softAces int) {
	for _, c := range h {
		total += c.Points()
		if c.IsAce() {
			softAces++
		}
	}
	for total > BlackjackValue && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}
