package sync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// CorrespondenceLister is the slice of the gateway the messaging pages fetch
// through.
type CorrespondenceLister interface {
	ListCorrespondences(ctx context.Context, username string) ([]models.Correspondence, error)
}

// CorrespondenceSync keeps the correspondence list and the currently-open
// conversation convergent. The selected working copy is always looked up by
// id inside the list, so an upsert of the selected correspondence refreshes
// the open conversation and its message list in the same merge.
type CorrespondenceSync struct {
	lifecycle
	fetcher CorrespondenceLister
	sess    *session.Session

	correspondences []models.Correspondence
	selectedID      string
}

// NewCorrespondenceSync constructs a synchronizer for the messaging pages.
func NewCorrespondenceSync(fetcher CorrespondenceLister, channel push.Channel, sess *session.Session, logger zerolog.Logger) *CorrespondenceSync {
	return &CorrespondenceSync{
		lifecycle: newLifecycle(channel, logger, "correspondence_sync"),
		fetcher:   fetcher,
		sess:      sess,
	}
}

// Initialize fetches the user's correspondences once. A fetch failure
// degrades to an empty snapshot; it is logged, never returned.
func (s *CorrespondenceSync) Initialize(ctx context.Context) {
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
		s.logger.Warn().Err(err).Msg("initial correspondence fetch failed, degrading to empty snapshot")
		s.correspondences = nil
		s.state = stateReady
		return
	}

	s.correspondences = correspondences
	s.state = stateReady
}

// Subscribe registers the page's push handlers. Idempotent.
func (s *CorrespondenceSync) Subscribe() {
	s.subscribe(map[string]push.Handler{
		events.CorrespondenceUpdate: s.onCorrespondenceUpdate,
		events.MessageUpdate:        s.onMessageUpdate,
	})
}

// Select marks the open conversation. An empty id deselects.
func (s *CorrespondenceSync) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Correspondences returns a deep copy of the current snapshot.
func (s *CorrespondenceSync) Correspondences() []models.Correspondence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneCorrespondences(s.correspondences)
}

// Selected returns a deep copy of the open conversation, with ok=false when
// nothing is selected or the selection is no longer in the list.
func (s *CorrespondenceSync) Selected() (models.Correspondence, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.selectedIndexLocked()
	if index < 0 {
		return models.Correspondence{}, false
	}
	return s.correspondences[index].Clone(), true
}

func (s *CorrespondenceSync) onCorrespondenceUpdate(payload any) {
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

func (s *CorrespondenceSync) onMessageUpdate(payload any) {
	message, ok := payload.(models.Message)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}

	index := s.selectedIndexLocked()
	if index < 0 {
		return
	}
	replaceMessage(&s.correspondences[index], message)
}

func (s *CorrespondenceSync) selectedIndexLocked() int {
	if s.selectedID == "" {
		return -1
	}
	for i := range s.correspondences {
		if s.correspondences[i].ID == s.selectedID {
			return i
		}
	}
	return -1
}
