package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Push transport selectors.
const (
	TransportWebsocket = "websocket"
	TransportNATS      = "nats"
	TransportRedis     = "redis"
)

// Config holds runtime configuration values for the Quibble client.
type Config struct {
	AppName           string
	APIBaseURL        string
	PushTransport     string
	PushURL           string
	NATSURL           string
	NATSSubjectPrefix string
	RedisURL          string
	RedisChannelBase  string
	SnapshotCachePath string
	HTTPTimeout       time.Duration
	PingInterval      time.Duration
	MaxReconnectWait  time.Duration
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("QUIBBLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Quibble Client")
	v.SetDefault("push.transport", TransportWebsocket)
	v.SetDefault("nats.subject_prefix", "quibble.events")
	v.SetDefault("redis.channel_base", "quibble:events")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("push.ping_interval", "30s")
	v.SetDefault("push.max_reconnect_wait", "30s")

	httpTimeout, err := parseDuration(v, "http.timeout", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	pingInterval, err := parseDuration(v, "push.ping_interval", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	maxReconnectWait, err := parseDuration(v, "push.max_reconnect_wait", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		APIBaseURL:        strings.TrimRight(v.GetString("api.base_url"), "/"),
		PushTransport:     strings.ToLower(v.GetString("push.transport")),
		PushURL:           v.GetString("push.url"),
		NATSURL:           v.GetString("nats.url"),
		NATSSubjectPrefix: v.GetString("nats.subject_prefix"),
		RedisURL:          v.GetString("redis.url"),
		RedisChannelBase:  v.GetString("redis.channel_base"),
		SnapshotCachePath: v.GetString("cache.path"),
		HTTPTimeout:       httpTimeout,
		PingInterval:      pingInterval,
		MaxReconnectWait:  maxReconnectWait,
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api base url must be provided")
	}

	switch cfg.PushTransport {
	case TransportWebsocket, TransportNATS, TransportRedis:
	default:
		return Config{}, fmt.Errorf("unsupported push transport: %s", cfg.PushTransport)
	}

	if cfg.PushTransport == TransportWebsocket && cfg.PushURL == "" {
		cfg.PushURL = deriveWebsocketURL(cfg.APIBaseURL)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func deriveWebsocketURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://") + "/ws"
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://") + "/ws"
	default:
		return baseURL + "/ws"
	}
}
