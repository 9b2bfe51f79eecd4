package events

import "github.com/quibbleapp/quibble-go/internal/models"

// PostKind discriminates the question-or-answer payloads. The kind is decided
// once when the payload is decoded; nothing downstream sniffs field names.
type PostKind string

// Post kinds.
const (
	PostQuestion PostKind = "question"
	PostAnswer   PostKind = "answer"
)

// Post is a tagged union of a question or an answer. Exactly one of the two
// pointers is non-nil, matching Kind.
type Post struct {
	Kind     PostKind
	Question *models.Question
	Answer   *models.Answer
}

// AnswerAdded carries a newly created answer for a question.
type AnswerAdded struct {
	QID    string        `json:"qid"`
	Answer models.Answer `json:"answer"`
}

// VotesChanged carries the full replacement vote arrays for a question.
type VotesChanged struct {
	QID       string   `json:"qid"`
	UpVotes   []string `json:"upVotes"`
	DownVotes []string `json:"downVotes"`
}

// CommentAdded carries the refreshed post a comment was attached to.
type CommentAdded struct {
	Result Post
}

// ReportsChanged carries the refreshed post after its reports changed.
type ReportsChanged struct {
	Result Post
}

// PostRemoved identifies the question the removal happened under and the
// soft-removed post itself.
type PostRemoved struct {
	QID         string
	UpdatedPost Post
}

// ReportDismissed identifies the question whose post had a report dismissed.
type ReportDismissed struct {
	QID         string
	UpdatedPost Post
}
