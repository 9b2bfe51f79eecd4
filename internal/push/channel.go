package push

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// Channel is the subscription surface synchronizers depend on. Events arrive
// in per-connection FIFO order per event name; no ordering is guaranteed
// across event names or relative to request/response calls.
type Channel interface {
	Subscribe(event, owner string, handler Handler) func()
	UnsubscribeAll(owner string)
	Close() error
}

// transport moves raw named events from the wire to the dispatcher.
type transport interface {
	name() string
	run(ctx context.Context, deliver func(event string, payload []byte))
	close() error
}

type channel struct {
	*Dispatcher
	transport transport
	cancel    context.CancelFunc
	logger    zerolog.Logger
}

// Connect opens the configured push transport and starts delivering events.
// The returned channel is usable immediately; subscriptions survive transport
// reconnects because handlers live in the dispatcher, not the connection.
func Connect(ctx context.Context, cfg config.Config, sess *session.Session, logger zerolog.Logger) (Channel, error) {
	dispatcher := NewDispatcher(logger)

	var (
		t   transport
		err error
	)
	switch cfg.PushTransport {
	case config.TransportWebsocket:
		t = newWebsocketTransport(cfg, sess, logger)
	case config.TransportNATS:
		t, err = newNATSTransport(cfg, sess, logger)
	case config.TransportRedis:
		t, err = newRedisTransport(cfg, logger)
	default:
		err = fmt.Errorf("unsupported push transport: %s", cfg.PushTransport)
	}
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := &channel{
		Dispatcher: dispatcher,
		transport:  t,
		cancel:     cancel,
		logger:     logger.With().Str("component", "push_channel").Str("transport", t.name()).Logger(),
	}

	go t.run(runCtx, dispatcher.Dispatch)

	return c, nil
}

func (c *channel) Close() error {
	c.cancel()
	err := c.transport.close()
	c.logger.Debug().Msg("push channel closed")
	return err
}
