package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"emberguard/internal/domain"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, s domain.Session) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context, now time.Time) (int, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, s domain.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", PasswordHash: string(hash)}, nil
		},
	}

	var stored domain.Session
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, s domain.Session) error {
			stored = s
			return nil
		},
	}

	svc := NewAuthService(users, sessions).WithSessionTTL(2 * time.Hour)
	svc.now = func() time.Time { return now }
	token, err := svc.Login(ctx, "testuser", password)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" || stored.Token != token {
		t.Errorf("expected stored token to match %q, got %q", token, stored.Token)
	}
	if stored.UserID != 1 {
		t.Errorf("expected userID 1, got %d", stored.UserID)
	}
	if !stored.ExpiresAt.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("unexpected expiry %v", stored.ExpiresAt)
	}
}

func TestAuthService_Login_Rejected(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.MinCost)

	tests := []struct {
		name     string
		user     *domain.User
		password string
	}{
		{"wrong password", &domain.User{ID: 1, PasswordHash: string(hash)}, "wrongpass"},
		{"unknown user", nil, "correctpass"},
		{"sso-only user", &domain.User{ID: 2}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{
				getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
					return tc.user, nil
				},
			}
			svc := NewAuthService(users, &mockSessionRepo{})
			if _, err := svc.Login(context.Background(), "testuser", tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser"}, nil
		},
	}

	svc := NewAuthService(users, sessions)
	user, err := svc.ValidateSession(context.Background(), "validtoken")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %s", user.Username)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions)
	if _, err := svc.ValidateSession(context.Background(), "expiredtoken"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}

func TestAuthService_ValidateSession_Unknown(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.ValidateSession(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_CreateInitialUser(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		username string
		password string
		wantErr  error
	}{
		{"first user", 0, "admin", "password123", nil},
		{"users exist", 1, "admin", "password123", ErrUsersExist},
		{"empty password", 0, "admin", "", ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{
				countFn: func(ctx context.Context) (int, error) { return tc.count, nil },
				createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
					if passwordHash == "" || passwordHash == tc.password {
						t.Error("password should be stored hashed")
					}
					return &domain.User{ID: 1, Username: username}, nil
				},
			}
			svc := NewAuthService(users, &mockSessionRepo{})
			if err := svc.CreateInitialUser(context.Background(), tc.username, tc.password); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAuthService_ValidateForwardAuth_ExistingUser(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "ssouser"}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			t.Error("existing user should not be re-created")
			return nil, errors.New("duplicate")
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	user, err := svc.ValidateForwardAuth(context.Background(), "ssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "ssouser" {
		t.Errorf("expected username 'ssouser', got %s", user.Username)
	}
}

func TestAuthService_ValidateForwardAuth_NewUser(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			if passwordHash != "" {
				t.Error("provisioned users have no password")
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	user, err := svc.ValidateForwardAuth(context.Background(), "newssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 2 {
		t.Errorf("expected provisioned user 2, got %d", user.ID)
	}

	if _, err := svc.ValidateForwardAuth(context.Background(), ""); err == nil {
		t.Error("expected error for empty header")
	}
}

func TestAuthService_LoginWithUser_RaceOnCreate(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.User{ID: 5, Username: username}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			return nil, errors.New("unique violation")
		},
	}
	var userID int64
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, s domain.Session) error {
			userID = s.UserID
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	if _, err := svc.LoginWithUser(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if userID != 5 {
		t.Errorf("expected session for user 5, got %d", userID)
	}
}
