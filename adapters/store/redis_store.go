package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/layer-3/blackjack/core"
	"github.com/redis/go-redis/v9"
)

const statsPrefix = "stats:"

// RedisStore is a Redis implementation of the Store and StatsStore interfaces
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store. Keys are written as prefix+key;
// an empty prefix stores scores directly under the player address.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", core.ErrNotFound
		}
		return "", fmt.Errorf("%w: get %s: %v", core.ErrStoreOperationFailed, key, err)
	}
	return value, nil
}

// Set stores a value; a zero ttl keeps the key forever
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", core.ErrStoreOperationFailed, key, err)
	}
	return nil
}

// RecordOutcome bumps the counter matching outcome in the player's stats hash
func (s *RedisStore) RecordOutcome(ctx context.Context, address string, outcome core.Outcome) error {
	field, ok := statsField(outcome)
	if !ok {
		return nil
	}
	if err := s.client.HIncrBy(ctx, s.prefix+statsPrefix+address, field, 1).Err(); err != nil {
		return fmt.Errorf("%w: record outcome for %s: %v", core.ErrStoreOperationFailed, address, err)
	}
	return nil
}

// Stats loads the player's round counters
func (s *RedisStore) Stats(ctx context.Context, address string) (core.Stats, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+statsPrefix+address).Result()
	if err != nil {
		return core.Stats{}, fmt.Errorf("%w: stats for %s: %v", core.ErrStoreOperationFailed, address, err)
	}

	stats := core.Stats{Address: address}
	for field, target := range map[string]*int64{
		"wins":   &stats.Wins,
		"losses": &stats.Losses,
		"draws":  &stats.Draws,
	} {
		if raw, ok := fields[field]; ok {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return core.Stats{}, fmt.Errorf("invalid %s counter for %s: %w", field, address, err)
			}
			*target = n
		}
	}
	return stats, nil
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func statsField(outcome core.Outcome) (string, bool) {
	switch outcome {
	case core.OutcomePlayerWins:
		return "wins", true
	case core.OutcomePlayerLoses:
		return "losses", true
	case core.OutcomeDraw:
		return "draws", true
	default:
		return "", false
	}
}
