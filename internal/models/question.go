package models

import "time"

// Report statuses as the platform serialises them.
const (
	ReportUnresolved = "unresolved"
	ReportDismissed  = "dismissed"
	ReportRemoved    = "removed"
)

// Tag labels a question with a topic.
type Tag struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Comment is an immutable remark attached to a question or an answer.
type Comment struct {
	ID              string    `json:"id,omitempty"`
	Text            string    `json:"text"`
	CommentBy       string    `json:"commentBy"`
	CommentDateTime time.Time `json:"commentDateTime"`
}

// UserReport flags a post for moderator review. Once a report leaves the
// unresolved state it never changes again; re-reporting creates a new report.
type UserReport struct {
	ID             string    `json:"id,omitempty"`
	Text           string    `json:"text"`
	ReportBy       string    `json:"reportBy"`
	ReportDateTime time.Time `json:"reportDateTime"`
	Status         string    `json:"status"`
}

// Answer is a response to a question. It is soft-removed, never deleted.
type Answer struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	AnsBy       string       `json:"ansBy"`
	AnsDateTime time.Time    `json:"ansDateTime"`
	Comments    []Comment    `json:"comments"`
	Reports     []UserReport `json:"reports"`
	IsRemoved   bool         `json:"isRemoved"`
	Endorsed    bool         `json:"endorsed"`
}

// Question is the root Q&A entity. Views is append-based (the server may
// record the same viewer more than once) and upVotes/downVotes are username
// sets the server keeps mutually exclusive.
type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Tags        []Tag        `json:"tags"`
	AskedBy     string       `json:"askedBy"`
	AskDateTime time.Time    `json:"askDateTime"`
	Views       []string     `json:"views"`
	UpVotes     []string     `json:"upVotes"`
	DownVotes   []string     `json:"downVotes"`
	Answers     []Answer     `json:"answers"`
	Comments    []Comment    `json:"comments"`
	Reports     []UserReport `json:"reports"`
	IsRemoved   bool         `json:"isRemoved"`
}

// AnswerIndex returns the position of the answer with the given id, or -1.
func (q *Question) AnswerIndex(id string) int {
	for i := range q.Answers {
		if q.Answers[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveAnswers returns the answers that have not been soft-removed.
func (q *Question) ActiveAnswers() []Answer {
	active := make([]Answer, 0, len(q.Answers))
	for _, answer := range q.Answers {
		if !answer.IsRemoved {
			active = append(active, answer)
		}
	}
	return active
}

// LatestActivity reports the most recent answer or comment time, falling back
// to the ask time for untouched questions.
func (q *Question) LatestActivity() time.Time {
	latest := q.AskDateTime
	for _, answer := range q.Answers {
		if answer.IsRemoved {
			continue
		}
		if answer.AnsDateTime.After(latest) {
			latest = answer.AnsDateTime
		}
		for _, comment := range answer.Comments {
			if comment.CommentDateTime.After(latest) {
				latest = comment.CommentDateTime
			}
		}
	}
	for _, comment := range q.Comments {
		if comment.CommentDateTime.After(latest) {
			latest = comment.CommentDateTime
		}
	}
	return latest
}

// Clone returns a deep copy so snapshot reads never alias synchronizer state.
func (q Question) Clone() Question {
	clone := q
	clone.Tags = append([]Tag(nil), q.Tags...)
	clone.Views = append([]string(nil), q.Views...)
	clone.UpVotes = append([]string(nil), q.UpVotes...)
	clone.DownVotes = append([]string(nil), q.DownVotes...)
	clone.Comments = append([]Comment(nil), q.Comments...)
	clone.Reports = append([]UserReport(nil), q.Reports...)
	clone.Answers = make([]Answer, len(q.Answers))
	for i, answer := range q.Answers {
		clone.Answers[i] = answer.Clone()
	}
	return clone
}

// Clone returns a deep copy of the answer.
func (a Answer) Clone() Answer {
	clone := a
	clone.Comments = append([]Comment(nil), a.Comments...)
	clone.Reports = append([]UserReport(nil), a.Reports...)
	return clone
}

// CloneQuestions deep-copies a question slice.
func CloneQuestions(questions []Question) []Question {
	clones := make([]Question, len(questions))
	for i, question := range questions {
		clones[i] = question.Clone()
	}
	return clones
}
