package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"abyss-server/internal/models"
)

// Compile-time check to ensure redisSessionRepository implements SessionRepository
var _ SessionRepository = (*redisSessionRepository)(nil)

type redisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
// Sessions live under "session:<token>" with a TTL matching their expiry, so
// Redis itself acts as the expiry sweep; reads still check expires_at lazily.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) SessionRepository {
	return &redisSessionRepository{
		client: client,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// SaveSession stores the session JSON with a TTL until its expiry.
func (r *redisSessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refusing to store already-expired session")
	}

	if err := r.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		r.logger.Error("Failed to save session in redis", zap.Error(err), zap.String("username", session.Username))
		return wrapRedisError("save session", err)
	}
	r.logger.Debug("Session saved",
		zap.String("username", session.Username),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// GetSession looks up a session by its token.
func (r *redisSessionRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get session from redis", zap.Error(err))
		return nil, wrapRedisError("get session", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		r.logger.Error("Failed to unmarshal session payload", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.Token = token
	return session, nil
}

// DeleteSession removes a session. Deleting an absent token is a no-op.
func (r *redisSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		r.logger.Error("Failed to delete session from redis", zap.Error(err))
		return wrapRedisError("delete session", err)
	}
	return nil
}
