package domain

import (
	"context"
	"time"
)

// User is a shopper account. Accounts are optional; an anonymous browser
// session can use the cart and task list without one.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session binds a login token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for login session storage.
// GetByToken returns (nil, nil) for unknown tokens.
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
