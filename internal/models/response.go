package models

// Machine-readable error codes returned alongside HTTP status codes.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeWrongCredentials = "INVALID_CREDENTIALS"
	ErrCodePendingApproval  = "PENDING_APPROVAL"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeDuplicateUser    = "DUPLICATE_USERNAME"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeStorageDown      = "STORAGE_UNAVAILABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
