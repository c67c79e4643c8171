package core

import (
	"fmt"
	"time"
)

// Points awarded or deducted when a round is won or lost
const RoundStake = 100

// Outcome is the message shown once a round resolves
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomePlayerWins  Outcome = "player wins"
	OutcomePlayerLoses Outcome = "player loses"
	OutcomeDraw        Outcome = "draw"
)

// ScoreDelta returns the score change the outcome carries
func (o Outcome) ScoreDelta() int {
	switch o {
	case OutcomePlayerWins:
		return RoundStake
	case OutcomePlayerLoses:
		return -RoundStake
	default:
		return 0
	}
}

// State is the position of a round in its lifecycle
type State int

const (
	StateAwaitingStart State = iota
	StateInProgress
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting_start"
	case StateInProgress:
		return "in_progress"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Round holds the true state of one blackjack round, including the dealer's
// hole card. Use View to build what callers may see.
type Round struct {
	ID      string
	Deck    Deck
	Player  Hand
	Dealer  Hand
	Outcome Outcome
}

// DealRound deals two cards to the player and then two to the dealer from
// deck. A natural 21 resolves the round on the spot.
func DealRound(id string, deck Deck, intn IntN) *Round {
	player, rest := deck.Draw(intn, 2)
	dealer, rest := rest.Draw(intn, 2)

	r := &Round{
		ID:     id,
		Deck:   rest,
		Player: Hand(player),
		Dealer: Hand(dealer),
	}
	if r.Player.Value() == BlackjackValue {
		r.Outcome = OutcomePlayerWins
	}
	return r
}

// State derives the lifecycle state; a nil round has not started
func (r *Round) State() State {
	switch {
	case r == nil:
		return StateAwaitingStart
	case r.Outcome == OutcomeNone:
		return StateInProgress
	default:
		return StateResolved
	}
}

// Hit draws one card for the player
func (r *Round) Hit(intn IntN) error {
	if err := r.requireInProgress(); err != nil {
		return err
	}

	drawn, rest := r.Deck.Draw(intn, 1)
	r.Deck = rest
	r.Player = append(r.Player, drawn...)

	switch value := r.Player.Value(); {
	case value == BlackjackValue:
		r.Outcome = OutcomePlayerWins
	case value > BlackjackValue:
		r.Outcome = OutcomePlayerLoses
	}
	return nil
}

// Stand plays out the dealer's hand and settles the round
func (r *Round) Stand(intn IntN) error {
	if err := r.requireInProgress(); err != nil {
		return err
	}

	r.Dealer, r.Deck = PlayDealer(r.Dealer, r.Deck, intn)

	dealer := r.Dealer.Value()
	player := r.Player.Value()
	switch {
	case dealer > BlackjackValue:
		r.Outcome = OutcomePlayerWins
	case dealer == BlackjackValue:
		r.Outcome = OutcomePlayerLoses
	case player > dealer:
		r.Outcome = OutcomePlayerWins
	case player < dealer:
		r.Outcome = OutcomePlayerLoses
	default:
		r.Outcome = OutcomeDraw
	}
	return nil
}

// CheckInvariant verifies that every card of the shoe is accounted for
func (r *Round) CheckInvariant() error {
	if n := len(r.Deck) + len(r.Player) + len(r.Dealer); n != DeckSize {
		return InvariantViolation{Reason: fmt.Sprintf("round %s holds %d cards", r.ID, n)}
	}
	return nil
}

func (r *Round) requireInProgress() error {
	switch r.State() {
	case StateAwaitingStart:
		return ErrNoActiveRound
	case StateResolved:
		return ErrRoundResolved
	}
	return nil
}

// View is the caller-facing projection of a round
type View struct {
	PlayerHand []Card `json:"playerHand"`
	DealerHand []Card `json:"dealerHand"`
	Message    string `json:"message"`
	Score      int    `json:"score"`
	Warning    string `json:"warning,omitempty"`
}

// View projects the round for callers. The dealer's second card stays
// masked until an outcome is set.
func (r *Round) View(score int) View {
	dealer := append([]Card(nil), r.Dealer...)
	if r.Outcome == OutcomeNone && len(dealer) > 1 {
		dealer = []Card{dealer[0], MaskedCard}
	}
	return View{
		PlayerHand: append([]Card(nil), r.Player...),
		DealerHand: dealer,
		Message:    string(r.Outcome),
		Score:      score,
	}
}

// RoundResult describes a resolved round
type RoundResult struct {
	RoundID     string    `json:"round_id"`
	Address     string    `json:"address"`
	Outcome     Outcome   `json:"outcome"`
	Delta       int       `json:"delta"`
	Score       int       `json:"score"`
	PlayerValue int       `json:"player_value"`
	DealerValue int       `json:"dealer_value"`
	ResolvedAt  time.Time `json:"resolved_at"`
}
