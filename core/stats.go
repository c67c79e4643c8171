package core

import "github.com/shopspring/decimal"

// Stats counts a player's resolved rounds
type Stats struct {
	Address string `json:"address"`
	Wins    int64  `json:"wins"`
	Losses  int64  `json:"losses"`
	Draws   int64  `json:"draws"`
}

// Rounds returns the number of resolved rounds
func (s Stats) Rounds() int64 {
	return s.Wins + s.Losses + s.Draws
}

// WinRate returns wins over resolved rounds, rounded to four places
func (s Stats) WinRate() decimal.Decimal {
	if s.Rounds() == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.Wins).Div(decimal.NewFromInt(s.Rounds())).Round(4)
}
