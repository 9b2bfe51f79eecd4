package sync

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
)

// QuestionLister is the slice of the gateway the question list page fetches
// through.
type QuestionLister interface {
	ListQuestions(ctx context.Context, order, search, askedBy string) ([]models.Question, error)
}

// SnapshotCache persists last-known snapshots so a reopened page can render
// before its initial fetch resolves. Implementations are best-effort.
type SnapshotCache interface {
	Save(page, key string, value any) error
	Load(page, key string, out any) (bool, error)
}

const questionListPage = "question_list"

// QuestionListSync keeps the question list page's snapshot convergent. It
// applies questionUpdate (upsert, new questions prepended), answerUpdate
// (append in creation order), and viewsUpdate (wholesale replace).
type QuestionListSync struct {
	lifecycle
	fetcher QuestionLister
	cache   SnapshotCache

	order     string
	search    string
	askedBy   string
	questions []models.Question
}

// NewQuestionListSync constructs a synchronizer for the question list page.
func NewQuestionListSync(fetcher QuestionLister, channel push.Channel, logger zerolog.Logger) *QuestionListSync {
	return &QuestionListSync{
		lifecycle: newLifecycle(channel, logger, "question_list_sync"),
		fetcher:   fetcher,
	}
}

// UseCache enables best-effort snapshot persistence across page loads.
func (s *QuestionListSync) UseCache(cache SnapshotCache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

// Initialize fetches the list once for the given filter. A fetch failure
// degrades to the cached snapshot when available, or an empty list; it is
// logged, never returned.
func (s *QuestionListSync) Initialize(ctx context.Context, order, search, askedBy string) {
	s.mu.Lock()
	if !s.beginFetchLocked() {
		s.mu.Unlock()
		return
	}
	s.order, s.search, s.askedBy = order, search, askedBy
	cache := s.cache
	s.mu.Unlock()

	questions, err := s.fetcher.ListQuestions(ctx, order, search, askedBy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}

	if err != nil {
		s.logger.Warn().Err(err).Msg("initial question fetch failed, degrading to cached snapshot")
		s.questions = nil
		if cache != nil {
			var cached []models.Question
			if ok, loadErr := cache.Load(questionListPage, s.filterKey(), &cached); loadErr == nil && ok {
				s.questions = cached
			}
		}
		s.state = stateReady
		return
	}

	s.questions = questions
	s.state = stateReady

	if cache != nil {
		if saveErr := cache.Save(questionListPage, s.filterKey(), questions); saveErr != nil {
			s.logger.Debug().Err(saveErr).Msg("failed to cache question snapshot")
		}
	}
}

// Subscribe registers the page's push handlers. Idempotent.
func (s *QuestionListSync) Subscribe() {
	s.subscribe(map[string]push.Handler{
		events.QuestionUpdate: s.onQuestionUpdate,
		events.AnswerUpdate:   s.onAnswerUpdate,
		events.ViewsUpdate:    s.onViewsUpdate,
	})
}

// Questions returns a deep copy of the current snapshot.
func (s *QuestionListSync) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneQuestions(s.questions)
}

func (s *QuestionListSync) onQuestionUpdate(payload any) {
	question, ok := payload.(models.Question)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}
	s.questions = upsertQuestion(s.questions, question)
}

func (s *QuestionListSync) onAnswerUpdate(payload any) {
	added, ok := payload.(events.AnswerAdded)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}
	s.questions = appendAnswer(s.questions, added.QID, added.Answer)
}

func (s *QuestionListSync) onViewsUpdate(payload any) {
	question, ok := payload.(models.Question)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}
	s.questions = replaceQuestion(s.questions, question)
}

func (s *QuestionListSync) filterKey() string {
	return strings.Join([]string{s.order, s.search, s.askedBy}, "|")
}
