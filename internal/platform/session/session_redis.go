// Package session provides the Redis-backed refresh session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
)

// revokedRetention is how long a revoked session stays readable so that reuse is reported
// as revoked rather than unknown.
const revokedRetention = 24 * time.Hour

// SessionRedis implements usecase.SessionRepository using Redis.
//
// Keys:
//
//	{prefix}:{id}           session JSON, TTL = time until expiry
//	{prefix}:user:{userID}  ZSET of active session IDs scored by creation time
type SessionRedis struct {
	client redis.Cmdable
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client redis.Cmdable, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new session and indexes it under its user.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := r.userSessionsKey(session.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(session.ID), data, ttl)
		pipe.ZAdd(ctx, userKey, redis.Z{Score: float64(session.CreatedAt.UnixNano()), Member: session.ID})
		// リフレッシュTTLは一定なので最新のセッションが最も長く残る
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	return err
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Revoke marks a session as revoked. Revoking twice keeps the first timestamp.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(id), data, revokedRetention)
		pipe.ZRem(ctx, r.userSessionsKey(session.UserID), id)
		return nil
	})
	return err
}

// DeleteExpired is a no-op: Redis expires session keys by TTL and dangling index
// entries are pruned on read.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// CountByUserID returns the number of active sessions for a user.
func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := r.activeSessions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID deletes the oldest active session for a user.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.activeSessions(ctx, userID)
	if err != nil || len(sessions) == 0 {
		return err
	}
	oldest := sessions[0]

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest.ID))
		pipe.ZRem(ctx, r.userSessionsKey(userID), oldest.ID)
		return nil
	})
	return err
}

// activeSessions returns valid sessions oldest first, pruning index entries whose session
// key has expired or which have been revoked.
func (r *SessionRedis) activeSessions(ctx context.Context, userID uint) ([]*entity.Session, error) {
	userKey := r.userSessionsKey(userID)
	ids, err := r.client.ZRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var (
		active []*entity.Session
		stale  []any
	)
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !s.IsValid() {
			stale = append(stale, id)
			continue
		}
		active = append(active, s)
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, userKey, stale...).Err(); err != nil {
			return nil, err
		}
	}
	return active, nil
}
