package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"abyss-server/internal/models"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

const userColumns = `id, username, email, password_hash, role, approved, display_name, avatar, bio, xp, streak_days, last_login, created_at, updated_at`

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Approved,
		&user.DisplayName,
		&user.Avatar,
		&user.Bio,
		&user.XP,
		&user.StreakDays,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user record.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash, role, approved, display_name, avatar, bio, xp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Approved,
		user.DisplayName,
		user.Avatar,
		user.Bio,
		user.XP,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logFields := []zap.Field{zap.String("username", user.Username), zap.String("email", user.Email)}
			if pgErr.ConstraintName == "users_email_key" {
				r.logger.Warn("Attempted to create duplicate user by email", logFields...)
				return models.ErrEmailAlreadyExists
			}
			r.logger.Warn("Attempted to create duplicate user by username", logFields...)
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("username", user.Username))
		return wrapPgError("create user", err)
	}
	r.logger.Info("User created", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return nil
}

// GetUserByUsername retrieves a user by their username.
func (r *pgUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by username", zap.String("username", username))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username from postgres", zap.Error(err), zap.String("username", username))
		return nil, wrapPgError("get user by username", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, wrapPgError("get user by email", err)
	}
	return user, nil
}

// ListUsers returns all registered users, newest first.
func (r *pgUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.listUsers(ctx, query)
}

// ListPendingUsers returns the users awaiting admin approval.
func (r *pgUserRepository) ListPendingUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE approved = FALSE ORDER BY created_at DESC`
	return r.listUsers(ctx, query)
}

func (r *pgUserRepository) listUsers(ctx context.Context, query string) ([]models.User, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users from postgres", zap.Error(err))
		return nil, wrapPgError("list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, wrapPgError("scan user row", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("iterate user rows", err)
	}
	return users, nil
}

// ApproveUser flips the approval flag. It is idempotent: approving an
// already-approved user succeeds without side effects.
func (r *pgUserRepository) ApproveUser(ctx context.Context, username string) error {
	query := `UPDATE users SET approved = TRUE, updated_at = now() WHERE username = $1`
	tag, err := r.db.Exec(ctx, query, username)
	if err != nil {
		r.logger.Error("Failed to approve user in postgres", zap.Error(err), zap.String("username", username))
		return wrapPgError("approve user", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User approved", zap.String("username", username))
	return nil
}

// DeleteUser removes a user record.
func (r *pgUserRepository) DeleteUser(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = $1`
	tag, err := r.db.Exec(ctx, query, username)
	if err != nil {
		r.logger.Error("Failed to delete user from postgres", zap.Error(err), zap.String("username", username))
		return wrapPgError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted", zap.String("username", username))
	return nil
}

// RecordLogin updates last-login bookkeeping in a single statement.
func (r *pgUserRepository) RecordLogin(ctx context.Context, username string, loginAt time.Time, xpBonus, streakDays int) error {
	query := `UPDATE users SET last_login = $2, xp = xp + $3, streak_days = $4, updated_at = now() WHERE username = $1`
	tag, err := r.db.Exec(ctx, query, username, loginAt, xpBonus, streakDays)
	if err != nil {
		r.logger.Error("Failed to record login in postgres", zap.Error(err), zap.String("username", username))
		return wrapPgError("record login", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
