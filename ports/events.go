package ports

import (
	"context"

	"github.com/layer-3/blackjack/core"
)

// EventPublisher publishes events to notify other services
type EventPublisher interface {
	PublishRoundResolved(ctx context.Context, result core.RoundResult) error
}
