// Package session carries the authenticated-user context that every
// synchronizer and transport receives explicitly. Nothing in the SDK reads
// user identity from package-level state.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Session errors.
var (
	ErrEmptyToken   = errors.New("session token is empty")
	ErrInvalidToken = errors.New("session token is not a valid JWT")
)

// Session identifies the logged-in user for the lifetime of one authenticated
// session. It is shared by pointer between the gateway, the push channel, and
// every synchronizer, and torn down on logout.
type Session struct {
	mu           sync.RWMutex
	username     string
	role         string
	token        string
	doNotDisturb bool
}

// New builds a session from a login result. The username reported by the
// server wins over the token claims; claims only fill gaps.
func New(username, token string) (*Session, error) {
	s := &Session{username: username, token: token}

	if token != "" {
		claims, err := parseClaims(token)
		if err != nil {
			return nil, err
		}
		if s.username == "" {
			s.username = usernameFromClaims(claims)
		}
		s.role = roleFromClaims(claims)
	}

	if s.username == "" {
		return nil, errors.New("session requires a username")
	}
	return s, nil
}

// Username returns the logged-in username.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Role returns the role claim carried by the token, if any.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Token returns the bearer token used for gateway and push authentication.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// DoNotDisturb reports whether the user has muted notification toasts.
func (s *Session) DoNotDisturb() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doNotDisturb
}

// SetDoNotDisturb records the user's do-not-disturb preference.
func (s *Session) SetDoNotDisturb(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doNotDisturb = enabled
}

// parseClaims decodes the token without signature verification; the client
// does not hold the server secret and only reads identity claims from it.
func parseClaims(token string) (jwt.MapClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func usernameFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "username", "user"} {
		if value, ok := claims[key]; ok {
			if name, ok := value.(string); ok && strings.TrimSpace(name) != "" {
				return strings.TrimSpace(name)
			}
		}
	}
	return ""
}

func roleFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"role", "roles"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			return strings.ToLower(strings.TrimSpace(v))
		case []interface{}:
			for _, item := range v {
				if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
					return strings.ToLower(strings.TrimSpace(str))
				}
			}
		}
	}
	return ""
}
