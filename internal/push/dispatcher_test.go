package push

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
)

func TestDispatchDecodesAndDelivers(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var got []any
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) {
		got = append(got, payload)
	})

	d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))

	require.Len(t, got, 1)
	notification, ok := got[0].(models.Notification)
	require.True(t, ok)
	require.Equal(t, "n1", notification.ID)
}

func TestDispatchDropsMalformedWithoutDeregistering(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var delivered int
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) {
		delivered++
	})

	d.Dispatch(events.NotificationUpdate, []byte(`{"user": "alice"}`))
	require.Zero(t, delivered)

	// The subscription survives the drop.
	d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))
	require.Equal(t, 1, delivered)
}

func TestDispatchIgnoresUnknownEvents(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var delivered int
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) {
		delivered++
	})

	d.Dispatch("mysteryUpdate", []byte(`{}`))
	require.Zero(t, delivered)
}

func TestSubscribeSameOwnerReplacesHandler(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var first, second int
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) { first++ })
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) { second++ })

	d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))

	require.Zero(t, first)
	require.Equal(t, 1, second)
}

func TestCancelRemovesExactlyOneRegistration(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var one, two int
	cancel := d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) { one++ })
	d.Subscribe(events.NotificationUpdate, "page-2", func(payload any) { two++ })

	cancel()
	d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))

	require.Zero(t, one)
	require.Equal(t, 1, two)
}

func TestUnsubscribeAllDropsEveryOwnerHandler(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var count int
	d.Subscribe(events.NotificationUpdate, "page-1", func(payload any) { count++ })
	d.Subscribe(events.MessageUpdate, "page-1", func(payload any) { count++ })
	d.Subscribe(events.NotificationUpdate, "page-2", func(payload any) { count++ })

	d.UnsubscribeAll("page-1")

	d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))
	d.Dispatch(events.MessageUpdate, []byte(`{"id": "m1", "messageBy": "alice"}`))

	require.Equal(t, 1, count)
}

func TestPanickingHandlerDoesNotAffectOthers(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	var survived int
	d.Subscribe(events.NotificationUpdate, "angry", func(payload any) { panic("boom") })
	d.Subscribe(events.NotificationUpdate, "calm", func(payload any) { survived++ })

	require.NotPanics(t, func() {
		d.Dispatch(events.NotificationUpdate, []byte(`{"id": "n1", "user": "alice"}`))
	})
	require.Equal(t, 1, survived)
}
