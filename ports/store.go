package ports

import (
	"context"
	"time"

	"github.com/layer-3/blackjack/core"
)

// Store is the external key-value store holding player scores.
// Get returns core.ErrNotFound when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// StatsStore keeps per-player round counters
type StatsStore interface {
	RecordOutcome(ctx context.Context, address string, outcome core.Outcome) error
	Stats(ctx context.Context, address string) (core.Stats, error)
}
