package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quibbleapp/quibble-go/internal/models"
)

// ListNotifications fetches a user's notifications filtered by read status.
func (c *Client) ListNotifications(ctx context.Context, username string, read bool) ([]models.Notification, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("read", strconv.FormatBool(read))

	var notifications []models.Notification
	if err := c.doJSON(ctx, "notifications.list", http.MethodGet, "/api/notifications", query, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips one notification into the read bucket.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (models.Notification, error) {
	var notification models.Notification
	path := "/api/notifications/" + url.PathEscape(id) + "/read"
	if err := c.doJSON(ctx, "notifications.read", http.MethodPut, path, nil, nil, &notification); err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}
