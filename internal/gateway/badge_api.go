package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quibbleapp/quibble-go/internal/models"
)

// ListBadges fetches every badge the platform can award.
func (c *Client) ListBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := c.doJSON(ctx, "badges.list", http.MethodGet, "/api/badges", nil, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// ListUserBadges fetches the badges one user has earned.
func (c *Client) ListUserBadges(ctx context.Context, username string) ([]models.Badge, error) {
	var badges []models.Badge
	path := "/api/badges/user/" + url.PathEscape(username)
	if err := c.doJSON(ctx, "badges.user", http.MethodGet, path, nil, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// GetBadgeProgress fetches a user's progress towards the next badge in a category.
func (c *Client) GetBadgeProgress(ctx context.Context, username, category string) (models.BadgeProgress, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("category", category)

	var progress models.BadgeProgress
	if err := c.doJSON(ctx, "badges.progress", http.MethodGet, "/api/badges/progress", query, nil, &progress); err != nil {
		return models.BadgeProgress{}, err
	}
	return progress, nil
}

// ListBadgeEarners fetches the usernames that have earned a badge.
func (c *Client) ListBadgeEarners(ctx context.Context, badgeID string) ([]string, error) {
	var users []string
	path := "/api/badges/" + url.PathEscape(badgeID) + "/earned"
	if err := c.doJSON(ctx, "badges.earned", http.MethodGet, path, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
