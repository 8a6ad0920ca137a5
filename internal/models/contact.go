package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact message statuses. Only an admin advances them.
const (
	ContactStatusPending = "pending"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidContactStatus reports whether s is a member of the closed status set.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusPending, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}
