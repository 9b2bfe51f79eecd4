package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "http://localhost:8080/")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, TransportWebsocket, cfg.PushTransport)
	require.Equal(t, "ws://localhost:8080/ws", cfg.PushURL)
	require.Equal(t, "quibble.events", cfg.NATSSubjectPrefix)
	require.Equal(t, "quibble:events", cfg.RedisChannelBase)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 30*time.Second, cfg.PingInterval)
}

func TestLoadDerivesSecureWebsocketURL(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "https://quibble.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "wss://quibble.example.com/ws", cfg.PushURL)
}

func TestLoadExplicitPushURLWins(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "http://localhost:8080")
	t.Setenv("QUIBBLE_PUSH_URL", "ws://push.internal:9000/events")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ws://push.internal:9000/events", cfg.PushURL)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "http://localhost:8080")
	t.Setenv("QUIBBLE_PUSH_TRANSPORT", "smoke-signal")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "http://localhost:8080")
	t.Setenv("QUIBBLE_HTTP_TIMEOUT", "eventually")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadAcceptsRedisTransport(t *testing.T) {
	t.Setenv("QUIBBLE_API_BASE_URL", "http://localhost:8080")
	t.Setenv("QUIBBLE_PUSH_TRANSPORT", "redis")
	t.Setenv("QUIBBLE_REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, TransportRedis, cfg.PushTransport)
	require.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	require.Empty(t, cfg.PushURL)
}
