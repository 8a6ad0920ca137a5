package service

import (
	"context"

	"github.com/google/uuid"

	"abyss-server/internal/models"
)

// Principal is a verified identity attached to a request.
type Principal struct {
	UserID      uuid.UUID `json:"-"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

// AuthService defines the authentication and authorization operations.
type AuthService interface {
	// Register creates a pending account. It never logs the user in.
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	// Login verifies credentials and mints a new opaque session token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Verify resolves a bearer token to its principal, deleting the
	// session when it turns out to be expired.
	Verify(ctx context.Context, token string) (*Principal, error)
	// Authorize is Verify plus a role check. The session is re-resolved
	// on every call so revocation and expiry take effect promptly.
	Authorize(ctx context.Context, token string, roles ...string) (*Principal, error)
	// Logout deletes the session unconditionally and is idempotent.
	Logout(ctx context.Context, token string) error
}
