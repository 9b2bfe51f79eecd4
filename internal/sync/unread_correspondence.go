package sync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// UnreadCorrespondenceSync backs the sidebar unread badge. It mirrors the
// correspondence list without a selection; the unread count itself is derived
// from the snapshot by the view layer on every read, never cached.
type UnreadCorrespondenceSync struct {
	lifecycle
	fetcher CorrespondenceLister
	sess    *session.Session

	correspondences []models.Correspondence
}

// NewUnreadCorrespondenceSync constructs the sidebar synchronizer.
func NewUnreadCorrespondenceSync(fetcher CorrespondenceLister, channel push.Channel, sess *session.Session, logger zerolog.Logger) *UnreadCorrespondenceSync {
	return &UnreadCorrespondenceSync{
		lifecycle: newLifecycle(channel, logger, "unread_correspondence_sync"),
		fetcher:   fetcher,
		sess:      sess,
	}
}

// Initialize fetches the user's correspondences once, degrading to empty on
// failure.
func (s *UnreadCorrespondenceSync) Initialize(ctx context.Context) {
	s.mu.Lock()
	if !s.beginFetchLocked() {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	correspondences, err := s.fetcher.ListCorrespondences(ctx, s.sess.Username())

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}

	if err != nil {
		s.logger.Warn().Err(err).Msg("initial sidebar fetch failed, degrading to empty snapshot")
		s.correspondences = nil
		s.state = stateReady
		return
	}

	s.correspondences = correspondences
	s.state = stateReady
}

// Subscribe registers the sidebar's push handler. Idempotent.
func (s *UnreadCorrespondenceSync) Subscribe() {
	s.subscribe(map[string]push.Handler{
		events.CorrespondenceUpdate: s.onCorrespondenceUpdate,
	})
}

// Correspondences returns a deep copy of the current snapshot.
func (s *UnreadCorrespondenceSync) Correspondences() []models.Correspondence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneCorrespondences(s.correspondences)
}

func (s *UnreadCorrespondenceSync) onCorrespondenceUpdate(payload any) {
	correspondence, ok := payload.(models.Correspondence)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}
	if !correspondence.HasMember(s.sess.Username()) {
		return
	}
	s.correspondences = upsertCorrespondence(s.correspondences, correspondence)
}
