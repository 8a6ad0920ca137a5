package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Self-registered accounts start
// unapproved and cannot log in until an admin flips the flag.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Approved     bool       `json:"approved"`
	DisplayName  string     `json:"displayName"`
	Avatar       string     `json:"avatar"`
	Bio          string     `json:"bio"`
	XP           int        `json:"xp"`
	StreakDays   int        `json:"streakDays"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Level is derived from accumulated XP and never stored.
func (u *User) Level() int {
	return u.XP/100 + 1
}

// Name returns the identity shown on authored content.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
