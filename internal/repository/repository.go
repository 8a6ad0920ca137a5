package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"abyss-server/internal/models"
)

// DBTX is the subset of pgxpool.Pool used by the repositories, so they can
// run against a pool or a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository provides access to user records.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListPendingUsers(ctx context.Context) ([]models.User, error)
	ApproveUser(ctx context.Context, username string) error
	DeleteUser(ctx context.Context, username string) error
	RecordLogin(ctx context.Context, username string, loginAt time.Time, xpBonus, streakDays int) error
}

// SessionRepository stores opaque bearer tokens.
type SessionRepository interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	// DeleteSession is delete-if-exists: deleting an absent token succeeds.
	DeleteSession(ctx context.Context, token string) error
}

// PostRepository provides access to blog posts.
type PostRepository interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// ContactRepository provides access to contact form submissions.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
	UpdateContactStatus(ctx context.Context, id uuid.UUID, status string) error
}
