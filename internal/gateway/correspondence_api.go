package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quibbleapp/quibble-go/internal/dto"
	"github.com/quibbleapp/quibble-go/internal/models"
)

// ListCorrespondences fetches every correspondence the user belongs to.
func (c *Client) ListCorrespondences(ctx context.Context, username string) ([]models.Correspondence, error) {
	query := url.Values{}
	query.Set("username", username)

	var correspondences []models.Correspondence
	if err := c.doJSON(ctx, "correspondences.list", http.MethodGet, "/api/correspondences", query, nil, &correspondences); err != nil {
		return nil, err
	}
	return correspondences, nil
}

// CreateCorrespondence opens a new conversation.
func (c *Client) CreateCorrespondence(ctx context.Context, payload dto.CreateCorrespondenceRequest) (models.Correspondence, error) {
	var correspondence models.Correspondence
	if err := c.doJSON(ctx, "correspondences.create", http.MethodPost, "/api/correspondences", nil, payload, &correspondence); err != nil {
		return models.Correspondence{}, err
	}
	return correspondence, nil
}

// UpdateCorrespondenceMembers replaces the member set of a correspondence.
func (c *Client) UpdateCorrespondenceMembers(ctx context.Context, id string, payload dto.UpdateMembersRequest) (models.Correspondence, error) {
	var correspondence models.Correspondence
	path := "/api/correspondences/" + url.PathEscape(id) + "/members"
	if err := c.doJSON(ctx, "correspondences.members", http.MethodPut, path, nil, payload, &correspondence); err != nil {
		return models.Correspondence{}, err
	}
	return correspondence, nil
}

// AddMessage appends a message and returns the refreshed correspondence.
func (c *Client) AddMessage(ctx context.Context, id string, payload dto.AddMessageRequest) (models.Correspondence, error) {
	var correspondence models.Correspondence
	path := "/api/correspondences/" + url.PathEscape(id) + "/messages"
	if err := c.doJSON(ctx, "messages.create", http.MethodPost, path, nil, payload, &correspondence); err != nil {
		return models.Correspondence{}, err
	}
	return correspondence, nil
}

// UpdateMessageText edits a message's text or code-style flag.
func (c *Client) UpdateMessageText(ctx context.Context, messageID string, payload dto.UpdateMessageTextRequest) (models.Message, error) {
	var message models.Message
	path := "/api/messages/" + url.PathEscape(messageID) + "/text"
	if err := c.doJSON(ctx, "messages.text", http.MethodPut, path, nil, payload, &message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// UpdateMessageEmojis replaces the emoji reaction map of a message.
func (c *Client) UpdateMessageEmojis(ctx context.Context, messageID string, payload dto.UpdateMessageEmojisRequest) (models.Message, error) {
	var message models.Message
	path := "/api/messages/" + url.PathEscape(messageID) + "/emojis"
	if err := c.doJSON(ctx, "messages.emojis", http.MethodPut, path, nil, payload, &message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// MarkCorrespondenceViewed records that the user has seen the latest state.
func (c *Client) MarkCorrespondenceViewed(ctx context.Context, id string, payload dto.MarkViewedRequest) (models.Correspondence, error) {
	var correspondence models.Correspondence
	path := "/api/correspondences/" + url.PathEscape(id) + "/views"
	if err := c.doJSON(ctx, "correspondences.viewed", http.MethodPost, path, nil, payload, &correspondence); err != nil {
		return models.Correspondence{}, err
	}
	return correspondence, nil
}
