package profile

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/pkg/imaging"
	"github.com/minstagram/minstagram-api/internal/pkg/password"
	"github.com/minstagram/minstagram-api/internal/pkg/storage"
)

// Service handles profile business logic
type Service struct {
	userRepo  user.Repository
	store     storage.Storage
	processor *imaging.Processor
	logger    zerolog.Logger
}

// NewService creates profile service
func NewService(userRepo user.Repository, store storage.Storage, processor *imaging.Processor, logger zerolog.Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		store:     store,
		processor: processor,
		logger:    logger.With().Str("service", "profile").Logger(),
	}
}

// Get returns the user's profile
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Response, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

// UpdateDisplayName changes the display name. Photos uploaded before the
// change keep the old name in their author snapshot.
func (s *Service) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*Response, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return nil, err
	}

	u.DisplayName = displayName
	return toResponse(u), nil
}

// UpdateAvatar processes the image into a square avatar, stores it and
// points the profile at the new URL.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader) (*Response, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	processed, err := s.processor.ProcessAvatar(reader)
	if err != nil {
		return nil, ErrInvalidImage
	}

	ext := ".jpg"
	if processed.ContentType == "image/png" {
		ext = ".png"
	}
	key := path.Join("avatars", userID.String()+ext)

	size := int64(len(processed.Data))
	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Data), size, processed.ContentType, nil); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("avatar store failed")
		return nil, err
	}

	avatarURL := s.store.GetURL(key)
	if err := s.userRepo.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return nil, err
	}

	u.AvatarURL = avatarURL
	return toResponse(u), nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}

	if !password.Verify(currentPassword, u.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

func toResponse(u *user.User) *Response {
	return &Response{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
