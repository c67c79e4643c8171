package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/layer-3/blackjack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisher_PublishRoundResolved(t *testing.T) {
	t.Parallel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, DefaultTopic)
	require.NoError(t, err)

	result := core.RoundResult{
		RoundID:     "round-1",
		Address:     "0xabcdef0123456789abcdef0123456789abcdef01",
		Outcome:     core.OutcomePlayerWins,
		Delta:       100,
		Score:       300,
		PlayerValue: 20,
		DealerValue: 18,
		ResolvedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, NewWatermillPublisher(pubSub, "").PublishRoundResolved(ctx, result))

	select {
	case msg := <-messages:
		msg.Ack()
		var got core.RoundResult
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, result.RoundID, got.RoundID)
		assert.Equal(t, result.Outcome, got.Outcome)
		assert.Equal(t, result.Score, got.Score)
		assert.True(t, result.ResolvedAt.Equal(got.ResolvedAt))
		assert.Equal(t, "player wins", msg.Metadata.Get("outcome"))
		assert.Equal(t, result.Address, msg.Metadata.Get("address"))
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                              { return nil }

func TestWatermillPublisher_PublishError(t *testing.T) {
	t.Parallel()

	err := NewWatermillPublisher(failingPublisher{}, "custom").PublishRoundResolved(context.Background(), core.RoundResult{})
	assert.ErrorContains(t, err, "broker down")
}
