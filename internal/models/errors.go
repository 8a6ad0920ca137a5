package models

import "errors"

// Application-wide standard errors.
var (
	// User & authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPendingApproval    = errors.New("account is pending approval")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Session errors
	ErrSessionNotFound = errors.New("session not found in storage")
	ErrSessionExpired  = errors.New("session has expired")

	// Resource errors
	ErrPostNotFound    = errors.New("post not found")
	ErrContactNotFound = errors.New("contact message not found")

	// Request/infrastructure errors
	ErrInvalidInput       = errors.New("invalid input data")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInternalServer     = errors.New("internal server error")
)
