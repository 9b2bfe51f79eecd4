// quibble-tail authenticates against a Quibble deployment, opens the push
// channel, and tails the notification bell as structured log output. It is
// both a diagnostic tool and a worked example of wiring the SDK together.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/dto"
	"github.com/quibbleapp/quibble-go/internal/gateway"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
	"github.com/quibbleapp/quibble-go/internal/session"
	"github.com/quibbleapp/quibble-go/internal/sync"
)

func main() {
	username := flag.String("username", "", "account to log in as")
	password := flag.String("password", "", "account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gateway.New(cfg, nil, validate, logger)

	login, err := client.Login(ctx, dto.LoginRequest{Username: *username, Password: *password})
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	sess, err := session.New(login.User.Username, login.Token)
	if err != nil {
		log.Fatalf("failed to build session: %v", err)
	}
	sess.SetDoNotDisturb(login.User.DoNotDisturb)
	client.SetSession(sess)

	channel, err := push.Connect(ctx, cfg, sess, logger)
	if err != nil {
		log.Fatalf("failed to open push channel: %v", err)
	}
	defer func() { _ = channel.Close() }()

	toast := func(notification models.Notification) {
		logger.Info().
			Str("type", notification.Type).
			Str("caption", notification.Caption).
			Str("redirect", notification.RedirectURL).
			Msg("notification")
	}

	bell := sync.NewNotificationSync(client, channel, sess, toast, logger)
	bell.Subscribe()
	bell.Initialize(ctx)
	defer bell.Teardown()

	logger.Info().
		Str("user", sess.Username()).
		Int("unread", len(bell.Unread())).
		Str("transport", cfg.PushTransport).
		Msg("tailing notifications")

	<-ctx.Done()
	logger.Info().Msg("shutting down")
}
