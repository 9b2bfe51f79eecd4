package sync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// NotificationFetcher is the slice of the gateway the notification bell
// fetches and mutates through.
type NotificationFetcher interface {
	ListNotifications(ctx context.Context, username string, read bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (models.Notification, error)
}

// NotificationSync keeps the bell's unread and read buckets convergent. The
// two buckets always partition every notification delivered to the user;
// moving one between them is the only state transition.
type NotificationSync struct {
	lifecycle
	fetcher NotificationFetcher
	sess    *session.Session

	unread  []models.Notification
	read    []models.Notification
	onToast func(models.Notification)
}

// NewNotificationSync constructs a synchronizer for the notification bell.
// onToast may be nil; it is suppressed while the user has do-not-disturb on,
// but bucketing always happens regardless.
func NewNotificationSync(fetcher NotificationFetcher, channel push.Channel, sess *session.Session, onToast func(models.Notification), logger zerolog.Logger) *NotificationSync {
	return &NotificationSync{
		lifecycle: newLifecycle(channel, logger, "notification_sync"),
		fetcher:   fetcher,
		sess:      sess,
		onToast:   onToast,
	}
}

// Initialize fetches the unread and read buckets, one fetch each. A failed
// bucket fetch degrades to an empty bucket; it is logged, never returned.
func (s *NotificationSync) Initialize(ctx context.Context) {
	s.mu.Lock()
	if !s.beginFetchLocked() {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	username := s.sess.Username()
	unread, unreadErr := s.fetcher.ListNotifications(ctx, username, false)
	read, readErr := s.fetcher.ListNotifications(ctx, username, true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}

	if unreadErr != nil {
		s.logger.Warn().Err(unreadErr).Msg("initial unread notification fetch failed, degrading to empty bucket")
		unread = nil
	}
	if readErr != nil {
		s.logger.Warn().Err(readErr).Msg("initial read notification fetch failed, degrading to empty bucket")
		read = nil
	}

	s.unread = unread
	s.read = read
	s.state = stateReady
}

// Subscribe registers the bell's push handler. Idempotent.
func (s *NotificationSync) Subscribe() {
	s.subscribe(map[string]push.Handler{
		events.NotificationUpdate: s.onNotification,
	})
}

// Unread returns a copy of the unread bucket.
func (s *NotificationSync) Unread() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneNotifications(s.unread)
}

// Read returns a copy of the read bucket.
func (s *NotificationSync) Read() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneNotifications(s.read)
}

// MarkRead asks the server to flip the notification and, on success, moves it
// from the unread to the read bucket. Business-rule rejections surface to the
// caller as the gateway returned them.
func (s *NotificationSync) MarkRead(ctx context.Context, id string) error {
	updated, err := s.fetcher.MarkNotificationRead(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return nil
	}

	kept := s.unread[:0]
	moved := false
	for _, notification := range s.unread {
		if notification.ID == id {
			moved = true
			continue
		}
		kept = append(kept, notification)
	}
	s.unread = kept

	if moved {
		updated.Read = true
		s.read = append(s.read, updated)
	}
	return nil
}

func (s *NotificationSync) onNotification(payload any) {
	notification, ok := payload.(models.Notification)
	if !ok {
		return
	}
	if notification.User != s.sess.Username() {
		return
	}

	var toast func(models.Notification)

	s.mu.Lock()
	if s.aliveLocked() {
		// New notifications land in the unread bucket only; they reach the
		// read bucket exclusively through MarkRead.
		s.unread = append(s.unread, notification)
		if s.onToast != nil && !s.sess.DoNotDisturb() {
			toast = s.onToast
		}
	}
	s.mu.Unlock()

	if toast != nil {
		toast(notification)
	}
}
