package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quibbleapp/quibble-go/internal/dto"
	"github.com/quibbleapp/quibble-go/internal/models"
)

// CreateModApplication submits a moderator application. A duplicate
// application is a business-rule rejection and surfaces as *APIError.
func (c *Client) CreateModApplication(ctx context.Context, payload dto.ModApplicationRequest) (models.ModApplication, error) {
	var application models.ModApplication
	if err := c.doJSON(ctx, "modapplications.create", http.MethodPost, "/api/modapplications", nil, payload, &application); err != nil {
		return models.ModApplication{}, err
	}
	return application, nil
}

// ListModApplications fetches the unresolved moderator applications.
func (c *Client) ListModApplications(ctx context.Context) ([]models.ModApplication, error) {
	var applications []models.ModApplication
	if err := c.doJSON(ctx, "modapplications.list", http.MethodGet, "/api/modapplications", nil, nil, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// ResolveModApplication accepts or rejects a moderator application.
func (c *Client) ResolveModApplication(ctx context.Context, id string, payload dto.ResolveModApplicationRequest) (models.ModApplication, error) {
	var application models.ModApplication
	path := "/api/modapplications/" + url.PathEscape(id) + "/resolve"
	if err := c.doJSON(ctx, "modapplications.resolve", http.MethodPut, path, nil, payload, &application); err != nil {
		return models.ModApplication{}, err
	}
	return application, nil
}
