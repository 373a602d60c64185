package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
	"github.com/minstagram/minstagram-api/internal/pkg/password"
)

type fakeUserRepo struct {
	users     map[uuid.UUID]*user.User
	byEmail   map[string]*user.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	if u, ok := f.users[id]; ok {
		u.DisplayName = displayName
	}
	return nil
}

func (f *fakeUserRepo) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error {
	if u, ok := f.users[id]; ok {
		u.AvatarURL = avatarURL
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func newTestService(repo user.Repository) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, nil)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:       "Alice@Example.COM",
		Password:    "password123",
		DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.User.Email != "alice@example.com" {
		t.Errorf("email not normalized: got %q", resp.User.Email)
	}
	if resp.Tokens.AccessToken == "" {
		t.Error("expected access token")
	}
	if resp.Tokens.RefreshToken == "" {
		t.Error("expected refresh token")
	}

	stored := repo.byEmail["alice@example.com"]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}
	if !password.Verify("password123", stored.PasswordHash) {
		t.Error("stored hash does not verify against password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	req := &RegisterRequest{Email: "bob@example.com", Password: "password123", DisplayName: "Bob"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	// Same address with different casing must still collide
	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:       "BOB@example.com",
		Password:    "password456",
		DisplayName: "Bob Again",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("Register() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:       "carol@example.com",
		Password:    "password123",
		DisplayName: "Carol",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "carol@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.User.DisplayName != "Carol" {
		t.Errorf("display name = %q, want Carol", resp.User.DisplayName)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:       "dave@example.com",
		Password:    "password123",
		DisplayName: "Dave",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "dave@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	// With Redis disabled, refresh tokens cannot be resolved
	_, err := svc.Refresh(context.Background(), "deadbeef")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("Refresh() error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestRefreshEmptyToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "")
	if !errors.Is(err, ErrRefreshTokenRequired) {
		t.Errorf("Refresh() error = %v, want ErrRefreshTokenRequired", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	reg, err := svc.Register(context.Background(), &RegisterRequest{
		Email:       "erin@example.com",
		Password:    "password123",
		DisplayName: "Erin",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := svc.GetCurrentUser(context.Background(), reg.User.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if got.Email != "erin@example.com" {
		t.Errorf("email = %q, want erin@example.com", got.Email)
	}

	_, err = svc.GetCurrentUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetCurrentUser() error = %v, want ErrUserNotFound", err)
	}
}
