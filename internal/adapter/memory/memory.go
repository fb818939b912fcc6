// Package memory implements in-memory repositories. Workspaces always live
// here; users and sessions can also be kept here for development and tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"emberguard/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	seed       []domain.HardeningTask
	workspaces map[string]*domain.Workspace
	users      []*domain.User
	sessions   map[string]*domain.Session
	now        func() time.Time

	userIDCounter int64
}

// New creates an in-memory database. Each new workspace gets its own copy of
// seed.
func New(seed []domain.HardeningTask) *DB {
	return &DB{
		seed:       seed,
		workspaces: make(map[string]*domain.Workspace),
		sessions:   make(map[string]*domain.Session),
		now:        time.Now,
	}
}

// Ensure interfaces are met.
var _ domain.WorkspaceRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- WorkspaceRepository ---

// Update runs fn against the session's workspace under the store lock.
func (db *DB) Update(ctx context.Context, sessionID string, fn func(*domain.Workspace) error) error {
	if sessionID == "" {
		return errors.New("empty session id")
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	ws, ok := db.workspaces[sessionID]
	if !ok {
		ws = domain.NewWorkspace(db.seed, now)
		db.workspaces[sessionID] = ws
	}
	ws.LastSeen = now
	return fn(ws)
}

// Delete discards a workspace.
func (db *DB) Delete(ctx context.Context, sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.workspaces, sessionID)
	return nil
}

// DeleteIdle discards workspaces last used before the cutoff.
func (db *DB) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for id, ws := range db.workspaces {
		if ws.LastSeen.Before(before) {
			delete(db.workspaces, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of live workspaces.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.workspaces)
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    db.now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a session.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.db.now().UTC()
	}
	r.db.sessions[s.Token] = &s
	return nil
}

// GetByToken retrieves a session by token. Expired sessions are dropped.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	if s.Expired(r.db.now()) {
		delete(r.db.sessions, token)
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all sessions expired at now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := 0
	for k, v := range r.db.sessions {
		if v.Expired(now) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
