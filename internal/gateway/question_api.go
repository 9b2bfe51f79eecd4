package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quibbleapp/quibble-go/internal/dto"
	"github.com/quibbleapp/quibble-go/internal/models"
)

// ListQuestions fetches questions matching an order, free-text search, and
// optional author filter. Any argument may be empty.
func (c *Client) ListQuestions(ctx context.Context, order, search, askedBy string) ([]models.Question, error) {
	query := url.Values{}
	if order != "" {
		query.Set("order", order)
	}
	if search != "" {
		query.Set("search", search)
	}
	if askedBy != "" {
		query.Set("askedBy", askedBy)
	}

	var questions []models.Question
	if err := c.doJSON(ctx, "questions.list", http.MethodGet, "/api/questions", query, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestionByID fetches one question and records the viewer against it.
func (c *Client) GetQuestionByID(ctx context.Context, id, viewer string) (models.Question, error) {
	query := url.Values{}
	if viewer != "" {
		query.Set("viewer", viewer)
	}

	var question models.Question
	if err := c.doJSON(ctx, "questions.get", http.MethodGet, "/api/questions/"+url.PathEscape(id), query, nil, &question); err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// CreateQuestion asks a new question and returns the server's copy.
func (c *Client) CreateQuestion(ctx context.Context, payload dto.AskQuestionRequest) (models.Question, error) {
	var question models.Question
	if err := c.doJSON(ctx, "questions.create", http.MethodPost, "/api/questions", nil, payload, &question); err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// AddAnswer posts an answer to a question.
func (c *Client) AddAnswer(ctx context.Context, payload dto.AddAnswerRequest) (models.Answer, error) {
	var answer models.Answer
	path := "/api/questions/" + url.PathEscape(payload.QID) + "/answers"
	if err := c.doJSON(ctx, "answers.create", http.MethodPost, path, nil, payload, &answer); err != nil {
		return models.Answer{}, err
	}
	return answer, nil
}

// VoteQuestion casts an up or down vote and returns the replacement vote
// arrays. The push event remains the convergence signal for other pages.
func (c *Client) VoteQuestion(ctx context.Context, qid string, payload dto.VoteRequest) (models.VoteData, error) {
	var votes models.VoteData
	path := "/api/questions/" + url.PathEscape(qid) + "/vote"
	if err := c.doJSON(ctx, "questions.vote", http.MethodPost, path, nil, payload, &votes); err != nil {
		return models.VoteData{}, err
	}
	return votes, nil
}

// EndorseAnswer toggles the asker's endorsement on an answer.
func (c *Client) EndorseAnswer(ctx context.Context, answerID string, endorsed bool) (models.Answer, error) {
	body := struct {
		Endorsed bool `json:"endorsed"`
	}{Endorsed: endorsed}

	var answer models.Answer
	path := "/api/answers/" + url.PathEscape(answerID) + "/endorse"
	if err := c.doJSON(ctx, "answers.endorse", http.MethodPut, path, nil, body, &answer); err != nil {
		return models.Answer{}, err
	}
	return answer, nil
}

// AddComment attaches a comment to a question or answer.
func (c *Client) AddComment(ctx context.Context, payload dto.AddCommentRequest) error {
	return c.doJSON(ctx, "comments.create", http.MethodPost, "/api/comments", nil, payload, nil)
}

// AddReport files a report against a question or answer.
func (c *Client) AddReport(ctx context.Context, payload dto.AddReportRequest) error {
	return c.doJSON(ctx, "reports.create", http.MethodPost, "/api/reports", nil, payload, nil)
}

// ResolveReport dismisses a report or soft-removes the reported post.
func (c *Client) ResolveReport(ctx context.Context, payload dto.ResolveReportRequest) error {
	path := "/api/reports/" + url.PathEscape(payload.PostID) + "/resolve"
	return c.doJSON(ctx, "reports.resolve", http.MethodPost, path, nil, payload, nil)
}

// ListTagCounts fetches every tag with its question count.
func (c *Client) ListTagCounts(ctx context.Context) ([]models.TagCount, error) {
	var counts []models.TagCount
	if err := c.doJSON(ctx, "tags.counts", http.MethodGet, "/api/tags/counts", nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
