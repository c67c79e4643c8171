package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/layer-3/blackjack/core"
	"github.com/layer-3/blackjack/ports"
)

const (
	DefaultStoreTimeout = 2 * time.Second
	DefaultRetryBackoff = 100 * time.Millisecond

	warnScoreUnavailable = "score unavailable, showing last known value"
	warnScoreNotSaved    = "score not saved"
	warnScoreReset       = "stored score unreadable, starting from 0"
)

// GameConfig tunes the game service
type GameConfig struct {
	StoreTimeout time.Duration // bound on every store call
	RetryBackoff time.Duration // wait before the single score write retry
	ScoreTTL     time.Duration // zero keeps scores forever
}

// GameService runs blackjack rounds, one session per wallet address
type GameService struct {
	store  ports.Store
	stats  ports.StatsStore
	events ports.EventPublisher
	logger watermill.LoggerAdapter
	config GameConfig

	sessions *sessionTable
	intn     core.IntN
	newDeck  func() core.Deck
	now      func() time.Time
}

// NewGameService creates a new game service. stats, events and logger may
// be nil.
func NewGameService(
	store ports.Store,
	stats ports.StatsStore,
	events ports.EventPublisher,
	logger watermill.LoggerAdapter,
	config GameConfig,
) *GameService {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = DefaultStoreTimeout
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = DefaultRetryBackoff
	}
	return &GameService{
		store:    store,
		stats:    stats,
		events:   events,
		logger:   logger,
		config:   config,
		sessions: newSessionTable(),
		intn:     core.DefaultIntN,
		newDeck:  core.NewDeck,
		now:      time.Now,
	}
}

// Status starts a fresh round for address and returns its view.
//
// Reading status is also the reset: every call deals a new round and throws
// away any unresolved one. The UI relies on this to begin and restart games.
func (s *GameService) Status(ctx context.Context, address string) (view core.View, err error) {
	addr, err := core.CanonicalAddress(address)
	if err != nil {
		return core.View{}, err
	}

	sess := s.sessions.acquire(addr)
	defer sess.mu.Unlock()
	defer recoverInvariant(&err)

	score, warning := s.loadScore(ctx, addr, sess.score)
	sess.score = score
	sess.round = core.DealRound(uuid.New().String(), s.newDeck(), s.intn)

	s.logger.Debug("Round started", watermill.LogFields{"address": addr, "round_id": sess.round.ID})
	return s.conclude(ctx, addr, sess, warning)
}

// Hit draws a card for the player
func (s *GameService) Hit(ctx context.Context, address string) (core.View, error) {
	return s.play(ctx, address, core.ActionHit, (*core.Round).Hit)
}

// Stand lets the dealer play and settles the round
func (s *GameService) Stand(ctx context.Context, address string) (core.View, error) {
	return s.play(ctx, address, core.ActionStand, (*core.Round).Stand)
}

// Apply runs a gameplay action. Authentication is not a gameplay action.
func (s *GameService) Apply(ctx context.Context, action core.Action, address string) (core.View, error) {
	switch action {
	case core.ActionHit:
		return s.Hit(ctx, address)
	case core.ActionStand:
		return s.Stand(ctx, address)
	default:
		return core.View{}, core.ErrInvalidAction
	}
}

// Stats returns the player's round counters
func (s *GameService) Stats(ctx context.Context, address string) (core.Stats, error) {
	addr, err := core.CanonicalAddress(address)
	if err != nil {
		return core.Stats{}, err
	}
	if s.stats == nil {
		return core.Stats{Address: addr}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()
	return s.stats.Stats(ctx, addr)
}

func (s *GameService) play(
	ctx context.Context,
	address string,
	action core.Action,
	move func(*core.Round, core.IntN) error,
) (view core.View, err error) {
	addr, err := core.CanonicalAddress(address)
	if err != nil {
		return core.View{}, err
	}

	sess := s.sessions.acquire(addr)
	defer sess.mu.Unlock()
	defer recoverInvariant(&err)

	if err := move(sess.round, s.intn); err != nil {
		return core.View{}, err
	}

	s.logger.Trace("Action applied", watermill.LogFields{"address": addr, "action": action.String(), "round_id": sess.round.ID})
	return s.conclude(ctx, addr, sess, "")
}

// conclude checks the round, settles it if it just resolved, and builds the view
func (s *GameService) conclude(ctx context.Context, addr string, sess *session, warning string) (core.View, error) {
	round := sess.round
	if err := round.CheckInvariant(); err != nil {
		s.logger.Error("Round invariant broken", err, watermill.LogFields{"address": addr, "round_id": round.ID})
		return core.View{}, err
	}

	var warnings []string
	if warning != "" {
		warnings = append(warnings, warning)
	}

	if round.State() == core.StateResolved {
		delta := round.Outcome.ScoreDelta()
		sess.score += delta
		if delta != 0 {
			if !s.saveScore(ctx, addr, sess.score) {
				warnings = append(warnings, warnScoreNotSaved)
			}
		}
		s.publish(ctx, addr, sess, delta)
	}

	view := round.View(sess.score)
	view.Warning = strings.Join(warnings, "; ")
	return view, nil
}

// loadScore reads the persisted score. When the store fails it falls back to
// the last score this process saw, so a later write does not clobber it with 0.
func (s *GameService) loadScore(ctx context.Context, addr string, lastKnown int) (int, string) {
	ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	raw, err := s.store.Get(ctx, addr)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return 0, ""
	case err != nil:
		s.logger.Error("Failed to load score", err, watermill.LogFields{"address": addr})
		return lastKnown, warnScoreUnavailable
	}

	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Error("Stored score is not a number, resetting", err, watermill.LogFields{"address": addr, "value": raw})
		return 0, warnScoreReset
	}
	return score, ""
}

// saveScore writes the score, retrying once after a short backoff
func (s *GameService) saveScore(ctx context.Context, addr string, score int) bool {
	value := strconv.Itoa(score)
	err := retry.Retry(func(attempt uint) error {
		ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()

		err := s.store.Set(ctx, addr, value, s.config.ScoreTTL)
		if err != nil {
			s.logger.Error("Failed to save score", err, watermill.LogFields{"address": addr, "attempt": attempt})
		}
		return err
	}, strategy.Limit(2), strategy.Wait(s.config.RetryBackoff))

	return err == nil
}

// publish records the result in stats and announces it. Both are best effort.
func (s *GameService) publish(ctx context.Context, addr string, sess *session, delta int) {
	round := sess.round
	fields := watermill.LogFields{"address": addr, "round_id": round.ID, "outcome": string(round.Outcome)}
	s.logger.Info("Round resolved", fields.Add(watermill.LogFields{"score": sess.score}))

	if s.stats != nil {
		statsCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		if err := s.stats.RecordOutcome(statsCtx, addr, round.Outcome); err != nil {
			s.logger.Error("Failed to record stats", err, fields)
		}
		cancel()
	}

	if s.events != nil {
		result := core.RoundResult{
			RoundID:     round.ID,
			Address:     addr,
			Outcome:     round.Outcome,
			Delta:       delta,
			Score:       sess.score,
			PlayerValue: round.Player.Value(),
			DealerValue: round.Dealer.Value(),
			ResolvedAt:  s.now().UTC(),
		}
		publishCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		if err := s.events.PublishRoundResolved(publishCtx, result); err != nil {
			s.logger.Error("Failed to publish round result", err, fields)
		}
		cancel()
	}
}

// recoverInvariant turns an InvariantViolation panic into an error; any
// other panic keeps unwinding
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if violation, ok := r.(core.InvariantViolation); ok {
		*err = violation
		return
	}
	panic(r)
}
