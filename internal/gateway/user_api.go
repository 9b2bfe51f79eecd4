package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quibbleapp/quibble-go/internal/dto"
	"github.com/quibbleapp/quibble-go/internal/models"
)

// Login authenticates a user and returns the account plus bearer token.
func (c *Client) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	var result dto.LoginResponse
	if err := c.doJSON(ctx, "users.login", http.MethodPost, "/api/users/login", nil, payload, &result); err != nil {
		return dto.LoginResponse{}, err
	}
	return result, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, payload dto.CreateUserRequest) (dto.LoginResponse, error) {
	var result dto.LoginResponse
	if err := c.doJSON(ctx, "users.create", http.MethodPost, "/api/users", nil, payload, &result); err != nil {
		return dto.LoginResponse{}, err
	}
	return result, nil
}

// ToggleModerator flips a user's moderator flag.
func (c *Client) ToggleModerator(ctx context.Context, username string) (models.User, error) {
	var user models.User
	path := "/api/users/" + url.PathEscape(username) + "/moderator"
	if err := c.doJSON(ctx, "users.moderator", http.MethodPut, path, nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetDoNotDisturb toggles the user's do-not-disturb preference.
func (c *Client) SetDoNotDisturb(ctx context.Context, username string) (dto.DoNotDisturbResponse, error) {
	var result dto.DoNotDisturbResponse
	path := "/api/users/" + url.PathEscape(username) + "/dnd"
	if err := c.doJSON(ctx, "users.dnd.set", http.MethodPut, path, nil, nil, &result); err != nil {
		return dto.DoNotDisturbResponse{}, err
	}
	return result, nil
}

// GetDoNotDisturb reads the user's do-not-disturb preference.
func (c *Client) GetDoNotDisturb(ctx context.Context, username string) (dto.DoNotDisturbResponse, error) {
	var result dto.DoNotDisturbResponse
	path := "/api/users/" + url.PathEscape(username) + "/dnd"
	if err := c.doJSON(ctx, "users.dnd.get", http.MethodGet, path, nil, nil, &result); err != nil {
		return dto.DoNotDisturbResponse{}, err
	}
	return result, nil
}

// UpdateProfilePicture changes the avatar shown for a user.
func (c *Client) UpdateProfilePicture(ctx context.Context, username string, payload dto.UpdateProfilePictureRequest) (models.User, error) {
	var user models.User
	path := "/api/users/" + url.PathEscape(username) + "/profile-picture"
	if err := c.doJSON(ctx, "users.avatar", http.MethodPut, path, nil, payload, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
