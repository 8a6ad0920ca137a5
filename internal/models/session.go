package models

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque bearer token to an authenticated identity. The role
// is a snapshot taken at login time; authorization re-resolves it from the
// user record, the snapshot only covers the bootstrap admin which has no row.
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session no longer authorizes anything.
// Expiry is inclusive: a session is dead at its deadline, not after it.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
