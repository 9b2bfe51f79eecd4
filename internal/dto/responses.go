package dto

import "github.com/quibbleapp/quibble-go/internal/models"

// LoginResponse carries the authenticated user and its bearer token.
type LoginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// DoNotDisturbResponse reports a user's do-not-disturb preference.
type DoNotDisturbResponse struct {
	Username     string `json:"username"`
	DoNotDisturb bool   `json:"doNotDisturb"`
}
