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

func correspondenceFixture(id string, members ...string) models.Correspondence {
	return models.Correspondence{
		ID:             id,
		MessageMembers: members,
		Messages: []models.Message{
			{ID: id + "-m1", MessageText: "hello", MessageBy: members[0], MessageDateTime: time.Now()},
		},
	}
}

func TestCorrespondenceInitialFetch(t *testing.T) {
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{
		correspondenceFixture("c1", "alice", "bob"),
	}}
	s := NewCorrespondenceSync(fetcher, newStubChannel(), testSession("alice"), zerolog.Nop())

	s.Initialize(context.Background())

	require.True(t, s.Ready())
	require.Len(t, s.Correspondences(), 1)
}

func TestCorrespondenceFetchFailureDegradesToEmpty(t *testing.T) {
	fetcher := &stubCorrespondenceLister{err: errors.New("gateway down")}
	s := NewCorrespondenceSync(fetcher, newStubChannel(), testSession("alice"), zerolog.Nop())

	s.Initialize(context.Background())

	require.True(t, s.Ready())
	require.Empty(t, s.Correspondences())
}

func TestCorrespondenceUpdateUpsertsKnownAndUnknown(t *testing.T) {
	channel := newStubChannel()
	known := correspondenceFixture("c1", "alice", "bob")
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{known}}
	s := NewCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	// Unknown id appends.
	channel.emit(events.CorrespondenceUpdate, correspondenceFixture("c2", "alice", "carol"))
	// Known id replaces in place.
	updated := known.Clone()
	updated.Views = []string{"bob"}
	channel.emit(events.CorrespondenceUpdate, updated)

	got := s.Correspondences()
	require.Len(t, got, 2)
	require.Equal(t, "c1", got[0].ID)
	require.Equal(t, []string{"bob"}, got[0].Views)
	require.Equal(t, "c2", got[1].ID)
}

func TestCorrespondenceUpdateForNonMemberIgnored(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubCorrespondenceLister{}
	s := NewCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.CorrespondenceUpdate, correspondenceFixture("c5", "bob", "carol"))

	require.Empty(t, s.Correspondences())
}

func TestCorrespondenceSelectedRefreshedByUpsert(t *testing.T) {
	channel := newStubChannel()
	known := correspondenceFixture("c1", "alice", "bob")
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{known}}
	s := NewCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())
	s.Select("c1")

	updated := known.Clone()
	updated.Messages = append(updated.Messages, models.Message{ID: "c1-m2", MessageText: "follow-up", MessageBy: "bob"})
	channel.emit(events.CorrespondenceUpdate, updated)

	selected, ok := s.Selected()
	require.True(t, ok)
	require.Len(t, selected.Messages, 2)
}

func TestCorrespondenceMessageUpdateOnlyInsideSelection(t *testing.T) {
	channel := newStubChannel()
	first := correspondenceFixture("c1", "alice", "bob")
	second := correspondenceFixture("c2", "alice", "carol")
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{first, second}}
	s := NewCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())
	s.Select("c1")

	channel.emit(events.MessageUpdate, models.Message{
		ID:           "c1-m1",
		MessageText:  "hello",
		MessageBy:    "alice",
		EmojiTracker: map[string]string{"bob": "thumbsUp"},
	})

	selected, _ := s.Selected()
	require.Equal(t, "thumbsUp", selected.Messages[0].EmojiTracker["bob"])

	// The same message id in an unselected correspondence stays untouched.
	got := s.Correspondences()
	require.Nil(t, got[1].Messages[0].EmojiTracker)
}

func TestCorrespondenceMessageUpdateWithNoSelectionIgnored(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{
		correspondenceFixture("c1", "alice", "bob"),
	}}
	s := NewCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.MessageUpdate, models.Message{ID: "c1-m1", MessageText: "edited"})

	got := s.Correspondences()
	require.Equal(t, "hello", got[0].Messages[0].MessageText)
}

func TestCorrespondenceSelectedGoneReturnsFalse(t *testing.T) {
	fetcher := &stubCorrespondenceLister{}
	s := NewCorrespondenceSync(fetcher, newStubChannel(), testSession("alice"), zerolog.Nop())
	s.Initialize(context.Background())
	s.Select("missing")

	_, ok := s.Selected()
	require.False(t, ok)
}

func TestUnreadCorrespondenceMirrorsListWithoutSelection(t *testing.T) {
	channel := newStubChannel()
	fetcher := &stubCorrespondenceLister{correspondences: []models.Correspondence{
		correspondenceFixture("c1", "alice", "bob"),
	}}
	s := NewUnreadCorrespondenceSync(fetcher, channel, testSession("alice"), zerolog.Nop())
	s.Subscribe()
	s.Initialize(context.Background())

	channel.emit(events.CorrespondenceUpdate, correspondenceFixture("c2", "alice", "carol"))
	channel.emit(events.CorrespondenceUpdate, correspondenceFixture("c3", "bob", "carol"))

	got := s.Correspondences()
	require.Len(t, got, 2)
	require.Equal(t, "c2", got[1].ID)
}
