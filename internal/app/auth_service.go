// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"emberguard/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsersExist indicates that initial setup has already been done.
	ErrUsersExist = errors.New("users already exist")
)

// DefaultSessionTTL is how long a login lasts when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
}

// WithSessionTTL sets how long new sessions last.
func (s *AuthService) WithSessionTTL(ttl time.Duration) *AuthService {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// SessionTTL reports how long new sessions last.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// Login authenticates a user and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil || user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.startSession(ctx, user.ID)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its user.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateInitialUser creates the first user if no users exist.
func (s *AuthService) CreateInitialUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUsersExist
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, username, string(hash))
	return err
}

// ValidateForwardAuth resolves the user named by a trusted reverse proxy's
// Remote-User header, provisioning it on first sight.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.User, error) {
	if remoteUser == "" {
		return nil, errors.New("no remote user header")
	}
	return s.provision(ctx, remoteUser)
}

// LoginWithUser creates a session for an already authenticated user (e.g. via SSO).
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.provision(ctx, username)
	if err != nil {
		return "", err
	}
	return s.startSession(ctx, user.ID)
}

// provision returns the named user, creating it with no password if missing.
func (s *AuthService) provision(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user, err = s.users.Create(ctx, username, "")
	if err != nil {
		// Lost a race with a concurrent create.
		user, err2 := s.users.GetByUsername(ctx, username)
		if err2 != nil || user == nil {
			return nil, err
		}
		return user, nil
	}
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	sess := domain.Session{Token: token, UserID: userID, ExpiresAt: now.Add(s.ttl), CreatedAt: now.UTC()}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
