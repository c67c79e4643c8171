package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/blackjack/core"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is an in-memory implementation of the Store and StatsStore
// interfaces. Scores do not survive a restart.
type MemoryStore struct {
	data  map[string]memoryEntry
	stats map[string]core.Stats
	mu    sync.RWMutex
	now   func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]memoryEntry),
		stats: make(map[string]core.Stats),
		now:   time.Now,
	}
}

// Get retrieves a value by key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok || (!entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)) {
		return "", core.ErrNotFound
	}
	return entry.value, nil
}

// Set stores a value; a zero ttl keeps the key forever
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.data[key] = entry
	return nil
}

// RecordOutcome bumps the counter matching outcome
func (s *MemoryStore) RecordOutcome(ctx context.Context, address string, outcome core.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.stats[address]
	stats.Address = address
	switch outcome {
	case core.OutcomePlayerWins:
		stats.Wins++
	case core.OutcomePlayerLoses:
		stats.Losses++
	case core.OutcomeDraw:
		stats.Draws++
	default:
		return nil
	}
	s.stats[address] = stats
	return nil
}

// Stats returns the player's round counters
func (s *MemoryStore) Stats(ctx context.Context, address string) (core.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[address]
	if !ok {
		return core.Stats{Address: address}, nil
	}
	return stats, nil
}
