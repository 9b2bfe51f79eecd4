package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
)

func notificationFixture(id, user string) models.Notification {
	return models.Notification{
		ID:        id,
		User:      user,
		Type:      "answer",
		Caption:   "caption " + id,
		CreatedAt: time.Now(),
	}
}

func TestNotificationInitialFetchFillsBothBuckets(t *testing.T) {
	fetcher := &stubNotificationFetcher{
		unread: []models.Notification{notificationFixture("n1", "alice")},
		read:   []models.Notification{notificationFixture("n2", "alice")},
	}
	s := NewNotificationSync(fetcher, newStubChannel(), testSession("alice"), nil, zerolog.Nop())

	s.Initialize(context.Background())

	require.True(t, s.Ready())
	require.Len(t, s.Unread(), 1)
	require.Len(t, s.Read(), 1)
}

func TestNotificationIncomingLandsInUnreadOnly(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubNotificationFetcher{}
	s := NewNotificationSync(fetcher, channel, testSession("alice"), nil, zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.NotificationUpdate, notificationFixture("n1", "alice"))

	require.Len(t, s.Unread(), 1)
	require.Empty(t, s.Read())
}

func TestNotificationForOtherUserIgnored(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubNotificationFetcher{}
	s := NewNotificationSync(fetcher, channel, testSession("alice"), nil, zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.NotificationUpdate, notificationFixture("n1", "bob"))

	require.Empty(t, s.Unread())
}

func TestNotificationToastFiresForRecipient(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubNotificationFetcher{}
	var toasted []models.Notification
	toast := func(n models.Notification) { toasted = append(toasted, n) }
	s := NewNotificationSync(fetcher, channel, testSession("alice"), toast, zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.NotificationUpdate, notificationFixture("n1", "alice"))

	require.Len(t, toasted, 1)
	require.Equal(t, "n1", toasted[0].ID)
}

func TestNotificationDoNotDisturbSuppressesToastNotBucketing(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubNotificationFetcher{}
	sess := testSession("alice")
	sess.SetDoNotDisturb(true)
	var toasted []models.Notification
	toast := func(n models.Notification) { toasted = append(toasted, n) }
	s := NewNotificationSync(fetcher, channel, sess, toast, zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.NotificationUpdate, notificationFixture("n1", "alice"))

	require.Empty(t, toasted)
	require.Len(t, s.Unread(), 1)
}

func TestNotificationMarkReadMovesBetweenBuckets(t *testing.T) {
	fetcher := &stubNotificationFetcher{
		unread: []models.Notification{
			notificationFixture("n1", "alice"),
			notificationFixture("n2", "alice"),
		},
	}
	s := NewNotificationSync(fetcher, newStubChannel(), testSession("alice"), nil, zerolog.Nop())
	s.Initialize(context.Background())

	require.NoError(t, s.MarkRead(context.Background(), "n1"))

	unread := s.Unread()
	require.Len(t, unread, 1)
	require.Equal(t, "n2", unread[0].ID)

	read := s.Read()
	require.Len(t, read, 1)
	require.Equal(t, "n1", read[0].ID)
	require.True(t, read[0].Read)
}

func TestNotificationMarkReadFailureLeavesBucketsAlone(t *testing.T) {
	fetcher := &stubNotificationFetcher{
		unread:  []models.Notification{notificationFixture("n1", "alice")},
		markErr: errors.New("notification already read"),
	}
	s := NewNotificationSync(fetcher, newStubChannel(), testSession("alice"), nil, zerolog.Nop())
	s.Initialize(context.Background())

	require.Error(t, s.MarkRead(context.Background(), "n1"))
	require.Len(t, s.Unread(), 1)
	require.Empty(t, s.Read())
}

func TestNotificationBucketsPartitionAfterMixedTraffic(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubNotificationFetcher{
		unread: []models.Notification{notificationFixture("n1", "alice")},
	}
	s := NewNotificationSync(fetcher, channel, testSession("alice"), nil, zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.NotificationUpdate, notificationFixture("n2", "alice"))
	require.NoError(t, s.MarkRead(context.Background(), "n1"))
	channel.emit(events.NotificationUpdate, notificationFixture("n3", "alice"))

	seen := make(map[string]int)
	for _, n := range s.Unread() {
		seen[n.ID]++
	}
	for _, n := range s.Read() {
		seen[n.ID]++
	}
	require.Equal(t, map[string]int{"n1": 1, "n2": 1, "n3": 1}, seen)
}
