package profile

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/pkg/imaging"
	"github.com/minstagram/minstagram-api/internal/pkg/password"
	"github.com/minstagram/minstagram-api/internal/pkg/storage"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
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

type fakeStorage struct {
	objects map[string][]byte
}

func (f *fakeStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, onProgress storage.ProgressFunc) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) GetURL(key string) string {
	return "http://cdn.test/" + key
}

func seedUser(repo *fakeUserRepo, pass string) *user.User {
	hash, _ := password.Hash(pass)
	u := &user.User{
		ID:           uuid.New(),
		Email:        "frank@example.com",
		PasswordHash: hash,
		DisplayName:  "Frank",
	}
	repo.users[u.ID] = u
	return u
}

func newTestService(repo *fakeUserRepo, store *fakeStorage) *Service {
	return NewService(repo, store, imaging.NewProcessor(imaging.DefaultConfig()), zerolog.Nop())
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGet(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "password123")
	svc := newTestService(repo, &fakeStorage{objects: make(map[string][]byte)})

	resp, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.DisplayName != "Frank" {
		t.Errorf("display name = %q, want Frank", resp.DisplayName)
	}

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Get() unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateDisplayName(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "password123")
	svc := newTestService(repo, &fakeStorage{objects: make(map[string][]byte)})

	resp, err := svc.UpdateDisplayName(context.Background(), u.ID, "Francis")
	if err != nil {
		t.Fatalf("UpdateDisplayName() error = %v", err)
	}
	if resp.DisplayName != "Francis" {
		t.Errorf("display name = %q, want Francis", resp.DisplayName)
	}
	if repo.users[u.ID].DisplayName != "Francis" {
		t.Error("display name not persisted")
	}
}

func TestUpdateAvatar(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "password123")
	store := &fakeStorage{objects: make(map[string][]byte)}
	svc := newTestService(repo, store)

	resp, err := svc.UpdateAvatar(context.Background(), u.ID, bytes.NewReader(pngBytes(t, 640, 480)))
	if err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	if resp.AvatarURL == "" {
		t.Fatal("avatar URL is empty")
	}
	if repo.users[u.ID].AvatarURL != resp.AvatarURL {
		t.Error("avatar URL not persisted")
	}
	if len(store.objects) != 1 {
		t.Fatalf("stored %d objects, want 1", len(store.objects))
	}

	// Stored avatar must decode as a square image
	for _, data := range store.objects {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode stored avatar: %v", err)
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			t.Errorf("avatar is %dx%d, want square", b.Dx(), b.Dy())
		}
	}
}

func TestUpdateAvatarRejectsNonImage(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "password123")
	svc := newTestService(repo, &fakeStorage{objects: make(map[string][]byte)})

	_, err := svc.UpdateAvatar(context.Background(), u.ID, strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("UpdateAvatar() error = %v, want ErrInvalidImage", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "old-password")
	svc := newTestService(repo, &fakeStorage{objects: make(map[string][]byte)})

	if err := svc.ChangePassword(context.Background(), u.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if !password.Verify("new-password", repo.users[u.ID].PasswordHash) {
		t.Error("new password does not verify")
	}
	if password.Verify("old-password", repo.users[u.ID].PasswordHash) {
		t.Error("old password still verifies")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	u := seedUser(repo, "old-password")
	svc := newTestService(repo, &fakeStorage{objects: make(map[string][]byte)})

	err := svc.ChangePassword(context.Background(), u.ID, "guess", "new-password")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("ChangePassword() error = %v, want ErrWrongPassword", err)
	}
	if !password.Verify("old-password", repo.users[u.ID].PasswordHash) {
		t.Error("password changed despite failed verification")
	}
}
