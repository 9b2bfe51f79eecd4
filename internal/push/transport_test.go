package push

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/pkg/platformtest"
)

func TestConnectRejectsUnsupportedTransport(t *testing.T) {
	_, err := Connect(context.Background(), config.Config{PushTransport: "carrier-pigeon"}, nil, zerolog.Nop())
	require.Error(t, err)
}

func TestWebsocketTransportDeliversEnvelopes(t *testing.T) {
	srv, err := platformtest.New()
	require.NoError(t, err)
	defer func() { _ = srv.Close() }()

	cfg := config.Config{
		PushTransport:    config.TransportWebsocket,
		PushURL:          srv.WSURL(),
		PingInterval:     time.Second,
		MaxReconnectWait: time.Second,
	}

	channel, err := Connect(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = channel.Close() }()

	received := make(chan models.Notification, 1)
	channel.Subscribe(events.NotificationUpdate, "test", func(payload any) {
		if notification, ok := payload.(models.Notification); ok {
			received <- notification
		}
	})

	require.NoError(t, srv.WaitForClient(5*time.Second))
	require.NoError(t, srv.Push(events.NotificationUpdate, models.Notification{ID: "n1", User: "alice"}))

	select {
	case notification := <-received:
		require.Equal(t, "n1", notification.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("notification never delivered over websocket")
	}
}

func TestWebsocketTransportDropsBadEnvelopes(t *testing.T) {
	srv, err := platformtest.New()
	require.NoError(t, err)
	defer func() { _ = srv.Close() }()

	cfg := config.Config{
		PushTransport:    config.TransportWebsocket,
		PushURL:          srv.WSURL(),
		PingInterval:     time.Second,
		MaxReconnectWait: time.Second,
	}

	channel, err := Connect(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = channel.Close() }()

	received := make(chan models.Notification, 1)
	channel.Subscribe(events.NotificationUpdate, "test", func(payload any) {
		if notification, ok := payload.(models.Notification); ok {
			received <- notification
		}
	})

	require.NoError(t, srv.WaitForClient(5*time.Second))
	// An envelope without an event name is dropped at the transport.
	require.NoError(t, srv.Push("", models.Notification{ID: "bad", User: "alice"}))
	require.NoError(t, srv.Push(events.NotificationUpdate, models.Notification{ID: "good", User: "alice"}))

	select {
	case notification := <-received:
		require.Equal(t, "good", notification.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("notification never delivered over websocket")
	}
}

func TestRedisTransportDeliversChannelMessages(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Config{
		PushTransport:    config.TransportRedis,
		RedisURL:         "redis://" + mr.Addr(),
		RedisChannelBase: "quibble:events",
	}

	channel, err := Connect(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = channel.Close() }()

	received := make(chan models.Notification, 1)
	channel.Subscribe(events.NotificationUpdate, "test", func(payload any) {
		if notification, ok := payload.(models.Notification); ok {
			received <- notification
		}
	})

	payload := `{"id": "n1", "user": "alice"}`
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case notification := <-received:
			require.Equal(t, "n1", notification.ID)
			return
		case <-ticker.C:
			// Re-publish until the subscription is live; pub/sub has no replay.
			mr.Publish("quibble:events:"+events.NotificationUpdate, payload)
		case <-deadline:
			t.Fatal("notification never delivered over redis")
		}
	}
}
