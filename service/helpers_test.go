package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/blackjack/adapters/store"
	"github.com/layer-3/blackjack/adapters/tokenizer"
	"github.com/layer-3/blackjack/adapters/wallet"
	"github.com/layer-3/blackjack/core"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	bob   = "0x1111111111111111111111111111111111111111"
)

func first(int) int { return 0 }

// stacked returns a full deck whose top cards carry the given ranks
func stacked(t *testing.T, ranks ...string) func() core.Deck {
	t.Helper()

	rest := core.NewDeck()
	top := make(core.Deck, 0, len(ranks))
	for _, rank := range ranks {
		idx := -1
		for i, c := range rest {
			if c.Rank == rank {
				idx = i
				break
			}
		}
		require.NotEqual(t, -1, idx, "no %s left to stack", rank)
		top = append(top, rest[idx])
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	deck := append(top, rest...)
	return func() core.Deck {
		return append(core.Deck(nil), deck...)
	}
}

// newStackedGame returns a game service dealing from a deck with ranks on top,
// in draw order: player, player, dealer, dealer, then hits/dealer draws.
func newStackedGame(t *testing.T, st *store.MemoryStore, ranks ...string) *GameService {
	t.Helper()
	g := NewGameService(st, st, nil, nil, GameConfig{RetryBackoff: time.Millisecond})
	g.intn = first
	g.newDeck = stacked(t, ranks...)
	return g
}

// flakyStore fails the first failures calls of each kind, then delegates
type flakyStore struct {
	*store.MemoryStore

	mu          sync.Mutex
	getFailures int
	setFailures int
	sets        int
}

var errUnavailable = errors.New("connection refused")

func (f *flakyStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	if f.getFailures > 0 {
		f.getFailures--
		f.mu.Unlock()
		return "", errUnavailable
	}
	f.mu.Unlock()
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	f.sets++
	if f.setFailures > 0 {
		f.setFailures--
		f.mu.Unlock()
		return errUnavailable
	}
	f.mu.Unlock()
	return f.MemoryStore.Set(ctx, key, value, ttl)
}

type recordingPublisher struct {
	mu        sync.Mutex
	results   []core.RoundResult
	deadlines []time.Time
	err       error
}

func (p *recordingPublisher) PublishRoundResolved(ctx context.Context, result core.RoundResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, result)
	deadline, _ := ctx.Deadline()
	p.deadlines = append(p.deadlines, deadline)
	return p.err
}

type testWallet struct {
	key     *ecdsa.PrivateKey
	address string
}

func newTestWallet(t *testing.T) testWallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return testWallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey).Hex()}
}

func (w testWallet) sign(t *testing.T, msg string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), w.key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return NewAuthService(tokenizer.NewJWTTokenizer(key), wallet.NewEthVerifier(), nil, 0)
}
