package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"abyss-server/internal/models"
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

// wrapPgError classifies a Postgres error. A PgError means the server was
// reachable and rejected the statement; anything else (dial failure, closed
// pool, deadline) means the backing store is unavailable and the request
// should degrade to 503 rather than 500.
func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %v: %w", op, err, models.ErrStorageUnavailable)
}

// wrapRedisError marks any Redis failure as storage unavailability. Callers
// handle redis.Nil before reaching this.
func wrapRedisError(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, models.ErrStorageUnavailable)
}
