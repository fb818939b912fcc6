// Package adaptredis stores login sessions in Redis with a key TTL matching
// the session expiry.
package adaptredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"emberguard/internal/domain"
)

// SessionRepo implements domain.SessionRepository on a Redis client.
type SessionRepo struct {
	client *redis.Client
	now    func() time.Time
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// NewSessionRepo wraps client.
func NewSessionRepo(client *redis.Client) *SessionRepo {
	return &SessionRepo{client: client, now: time.Now}
}

// Open parses a redis:// URL, connects and pings.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

type sessionRecord struct {
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create stores s until its expiry. Already-expired sessions are not stored.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	now := r.now()
	ttl := s.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now.UTC()
	}
	data, err := json.Marshal(sessionRecord{UserID: s.UserID, ExpiresAt: s.ExpiresAt.UTC(), CreatedAt: s.CreatedAt})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(s.Token), data, ttl).Err()
}

// GetByToken returns the session for token, or (nil, nil) when unknown or
// expired.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = r.client.Del(ctx, sessionKey(token)).Err()
		return nil, nil
	}
	s := &domain.Session{Token: token, UserID: rec.UserID, ExpiresAt: rec.ExpiresAt, CreatedAt: rec.CreatedAt}
	if s.Expired(r.now()) {
		return nil, nil
	}
	return s, nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKey(token)).Err()
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
