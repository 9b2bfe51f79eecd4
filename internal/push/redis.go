package push

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/observability"
)

// redisTransport receives each event name on its own pub/sub channel under a
// common base, e.g. quibble:events:questionUpdate.
type redisTransport struct {
	client *redis.Client
	base   string
	logger zerolog.Logger
}

func newRedisTransport(cfg config.Config, logger zerolog.Logger) (*redisTransport, error) {
	options, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return &redisTransport{
		client: redis.NewClient(options),
		base:   cfg.RedisChannelBase,
		logger: logger.With().Str("component", "push_redis").Logger(),
	}, nil
}

func (t *redisTransport) name() string { return config.TransportRedis }

func (t *redisTransport) run(ctx context.Context, deliver func(event string, payload []byte)) {
	channels := make([]string, 0, len(events.Names))
	for _, event := range events.Names {
		channels = append(channels, t.base+":"+event)
	}

	pubsub := t.client.Subscribe(ctx, channels...)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			observability.PushReconnects().WithLabelValues(t.name()).Inc()
			t.logger.Error().Err(err).Msg("push redis subscription closed")
			return
		}

		event := strings.TrimPrefix(msg.Channel, t.base+":")
		deliver(event, []byte(msg.Payload))
	}
}

func (t *redisTransport) close() error {
	return t.client.Close()
}
