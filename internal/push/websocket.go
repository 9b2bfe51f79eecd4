package push

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/observability"
	"github.com/quibbleapp/quibble-go/internal/session"
)

const initialReconnectWait = time.Second

// websocketTransport multiplexes all event names over one socket carrying
// {event, payload} envelopes, reconnecting with exponential backoff until
// closed.
type websocketTransport struct {
	url          string
	sess         *session.Session
	pingInterval time.Duration
	maxWait      time.Duration
	logger       zerolog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed chan struct{}
	once   sync.Once
}

func newWebsocketTransport(cfg config.Config, sess *session.Session, logger zerolog.Logger) *websocketTransport {
	return &websocketTransport{
		url:          cfg.PushURL,
		sess:         sess,
		pingInterval: cfg.PingInterval,
		maxWait:      cfg.MaxReconnectWait,
		logger:       logger.With().Str("component", "push_websocket").Logger(),
		closed:       make(chan struct{}),
	}
}

func (t *websocketTransport) name() string { return config.TransportWebsocket }

func (t *websocketTransport) run(ctx context.Context, deliver func(event string, payload []byte)) {
	wait := initialReconnectWait

	for {
		conn, err := t.dial(ctx)
		if err != nil {
			if t.done(ctx) {
				return
			}
			observability.PushReconnects().WithLabelValues(t.name()).Inc()
			t.logger.Warn().Err(err).Dur("retry_in", wait).Msg("push dial failed")
			if !t.sleep(ctx, wait) {
				return
			}
			wait = min(wait*2, t.maxWait)
			continue
		}

		wait = initialReconnectWait
		t.readLoop(ctx, conn, deliver)

		if t.done(ctx) {
			return
		}
		observability.PushReconnects().WithLabelValues(t.name()).Inc()
		if !t.sleep(ctx, wait) {
			return
		}
	}
}

func (t *websocketTransport) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if t.sess != nil && t.sess.Token() != "" {
		header.Set("Authorization", "Bearer "+t.sess.Token())
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, t.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	return conn, nil
}

func (t *websocketTransport) readLoop(ctx context.Context, conn *websocket.Conn, deliver func(event string, payload []byte)) {
	defer func() { _ = conn.Close() }()

	pingCtx, cancelPing := context.WithCancel(ctx)
	defer cancelPing()
	go t.pingLoop(pingCtx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.logger.Debug().Err(err).Msg("push read loop ended")
			return
		}

		var envelope events.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Event == "" {
			observability.EventsDropped().WithLabelValues("bad_envelope").Inc()
			t.logger.Warn().Err(err).Msg("invalid push envelope")
			continue
		}

		deliver(envelope.Event, envelope.Payload)
	}
}

func (t *websocketTransport) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(t.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				t.logger.Debug().Err(err).Msg("push ping failed")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (t *websocketTransport) done(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-t.closed:
		return true
	default:
		return false
	}
}

func (t *websocketTransport) sleep(ctx context.Context, wait time.Duration) bool {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-t.closed:
		return false
	}
}

func (t *websocketTransport) close() error {
	t.once.Do(func() { close(t.closed) })

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
