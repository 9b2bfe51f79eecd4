package push

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/observability"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// natsTransport receives each event name on its own subject under a common
// prefix. Reconnect handling is delegated to the NATS client.
type natsTransport struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

func newNATSTransport(cfg config.Config, sess *session.Session, logger zerolog.Logger) (*natsTransport, error) {
	options := []nats.Option{nats.MaxReconnects(-1)}
	if sess != nil && sess.Token() != "" {
		options = append(options, nats.Token(sess.Token()))
	}
	options = append(options, nats.ReconnectHandler(func(*nats.Conn) {
		observability.PushReconnects().WithLabelValues(config.TransportNATS).Inc()
	}))

	conn, err := nats.Connect(cfg.NATSURL, options...)
	if err != nil {
		return nil, err
	}

	return &natsTransport{
		conn:   conn,
		prefix: cfg.NATSSubjectPrefix,
		logger: logger.With().Str("component", "push_nats").Logger(),
	}, nil
}

func (t *natsTransport) name() string { return config.TransportNATS }

func (t *natsTransport) run(ctx context.Context, deliver func(event string, payload []byte)) {
	subscriptions := make([]*nats.Subscription, 0, len(events.Names))

	for _, event := range events.Names {
		event := event
		sub, err := t.conn.Subscribe(t.prefix+"."+event, func(msg *nats.Msg) {
			deliver(event, msg.Data)
		})
		if err != nil {
			t.logger.Error().Err(err).Str("event", event).Msg("failed to subscribe to push subject")
			continue
		}
		subscriptions = append(subscriptions, sub)
	}

	<-ctx.Done()

	for _, sub := range subscriptions {
		if err := sub.Drain(); err != nil {
			t.logger.Warn().Err(err).Msg("failed to drain push subscription")
		}
	}
}

func (t *natsTransport) close() error {
	t.conn.Close()
	return nil
}
