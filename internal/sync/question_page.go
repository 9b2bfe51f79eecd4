package sync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
)

// QuestionGetter is the slice of the gateway the single-question page fetches
// through.
type QuestionGetter interface {
	GetQuestionByID(ctx context.Context, id, viewer string) (models.Question, error)
}

// QuestionPageSync keeps one question and its answers convergent for the
// single-question page. A removal of the root question clears the snapshot
// and fires the NavigateAway callback, because the page cannot render a
// removed root entity.
type QuestionPageSync struct {
	lifecycle
	fetcher QuestionGetter

	qid          string
	question     *models.Question
	navigateAway func()
}

// NewQuestionPageSync constructs a synchronizer for the single-question page.
// navigateAway may be nil.
func NewQuestionPageSync(fetcher QuestionGetter, channel push.Channel, navigateAway func(), logger zerolog.Logger) *QuestionPageSync {
	return &QuestionPageSync{
		lifecycle:    newLifecycle(channel, logger, "question_page_sync"),
		fetcher:      fetcher,
		navigateAway: navigateAway,
	}
}

// Initialize fetches the question once, recording the viewer. A fetch failure
// degrades to an empty snapshot; it is logged, never returned.
func (s *QuestionPageSync) Initialize(ctx context.Context, qid, viewer string) {
	s.mu.Lock()
	if !s.beginFetchLocked() {
		s.mu.Unlock()
		return
	}
	s.qid = qid
	s.mu.Unlock()

	question, err := s.fetcher.GetQuestionByID(ctx, qid, viewer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("qid", qid).Msg("initial question fetch failed, degrading to empty snapshot")
		s.question = nil
		s.state = stateReady
		return
	}

	s.question = &question
	s.state = stateReady
}

// Subscribe registers the page's push handlers. Idempotent.
func (s *QuestionPageSync) Subscribe() {
	s.subscribe(map[string]push.Handler{
		events.QuestionUpdate:        s.onQuestionReplace,
		events.ViewsUpdate:           s.onQuestionReplace,
		events.AnswerUpdate:          s.onAnswerUpdate,
		events.VoteUpdate:            s.onVoteUpdate,
		events.CommentUpdate:         s.onCommentUpdate,
		events.RemovePostUpdate:      s.onRemovePost,
		events.ReportDismissedUpdate: s.onReportDismissed,
		events.UserReportsUpdate:     s.onUserReports,
	})
}

// Question returns a deep copy of the snapshot, with ok=false when the page
// has no question (never loaded, failed load, or removed).
func (s *QuestionPageSync) Question() (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.question == nil {
		return models.Question{}, false
	}
	return s.question.Clone(), true
}

func (s *QuestionPageSync) onQuestionReplace(payload any) {
	question, ok := payload.(models.Question)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() || s.question == nil || question.ID != s.qid {
		return
	}
	s.question = &question
}

func (s *QuestionPageSync) onAnswerUpdate(payload any) {
	added, ok := payload.(events.AnswerAdded)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() || s.question == nil || added.QID != s.qid {
		return
	}
	s.question.Answers = append(s.question.Answers, added.Answer)
}

func (s *QuestionPageSync) onVoteUpdate(payload any) {
	votes, ok := payload.(events.VotesChanged)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() {
		return
	}
	replaceVotes(s.question, votes)
}

func (s *QuestionPageSync) onCommentUpdate(payload any) {
	added, ok := payload.(events.CommentAdded)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() || s.question == nil {
		return
	}

	switch added.Result.Kind {
	case events.PostQuestion:
		if added.Result.Question.ID == s.qid {
			refreshed := *added.Result.Question
			s.question = &refreshed
		}
	case events.PostAnswer:
		replaceAnswer(s.question, *added.Result.Answer)
	}
}

func (s *QuestionPageSync) onRemovePost(payload any) {
	removed, ok := payload.(events.PostRemoved)
	if !ok {
		return
	}

	var navigate func()

	s.mu.Lock()
	if s.aliveLocked() && s.question != nil && removed.QID == s.qid {
		switch removed.UpdatedPost.Kind {
		case events.PostAnswer:
			removeAnswer(s.question, removed.UpdatedPost.Answer.ID)
		case events.PostQuestion:
			s.question = nil
			navigate = s.navigateAway
		}
	}
	s.mu.Unlock()

	// The navigation callback is a UI follow-up, not part of the merge; it
	// runs outside the snapshot lock.
	if navigate != nil {
		navigate()
	}
}

func (s *QuestionPageSync) onReportDismissed(payload any) {
	dismissed, ok := payload.(events.ReportDismissed)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() || s.question == nil || dismissed.QID != s.qid {
		return
	}

	switch dismissed.UpdatedPost.Kind {
	case events.PostQuestion:
		dismissReports(s.question.Reports, dismissed.UpdatedPost.Question.Reports)
	case events.PostAnswer:
		if i := s.question.AnswerIndex(dismissed.UpdatedPost.Answer.ID); i >= 0 {
			dismissReports(s.question.Answers[i].Reports, dismissed.UpdatedPost.Answer.Reports)
		}
	}
}

func (s *QuestionPageSync) onUserReports(payload any) {
	changed, ok := payload.(events.ReportsChanged)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.aliveLocked() || s.question == nil {
		return
	}

	switch changed.Result.Kind {
	case events.PostQuestion:
		if changed.Result.Question.ID == s.qid {
			s.question.Reports = changed.Result.Question.Reports
		}
	case events.PostAnswer:
		if i := s.question.AnswerIndex(changed.Result.Answer.ID); i >= 0 {
			s.question.Answers[i].Reports = changed.Result.Answer.Reports
		}
	}
}
