package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/photo"
	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/pkg/storage"
)

// allowedTypes maps accepted image content types to their file extensions.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service handles photo upload business logic
type Service struct {
	photoRepo photo.Repository
	userRepo  user.Repository
	store     storage.Storage
	tracker   *Tracker
	maxSize   int64
	logger    zerolog.Logger
}

// NewService creates upload service
func NewService(photoRepo photo.Repository, userRepo user.Repository, store storage.Storage, tracker *Tracker, maxSize int64, logger zerolog.Logger) *Service {
	return &Service{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		store:     store,
		tracker:   tracker,
		maxSize:   maxSize,
		logger:    logger.With().Str("service", "upload").Logger(),
	}
}

// Upload streams the file to storage while reporting progress, then creates
// the photo document with the author snapshot, zero likes and no comments.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, uploadID string, reader io.Reader, size int64, contentType, description string) (*photo.Photo, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrInvalidFileType
	}
	if size <= 0 || size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, fmt.Errorf("upload: load author: %w", err)
	}

	photoID := uuid.New()
	key := objectKey(photoID, ext)

	s.tracker.Start(uploadID, size)
	err = s.store.Put(ctx, key, reader, size, contentType, func(p storage.Progress) {
		s.tracker.Update(uploadID, p)
	})
	if err != nil {
		s.tracker.Abort(uploadID)
		s.logger.Error().Err(err).Str("key", key).Msg("storage put failed")
		return nil, ErrUploadFailed
	}

	p := &photo.Photo{
		ID:              photoID,
		URL:             s.store.GetURL(key),
		Description:     strings.TrimSpace(description),
		AuthorID:        u.ID,
		AuthorName:      u.DisplayName,
		AuthorAvatarURL: u.AvatarURL,
		LikeCount:       0,
		Comments:        photo.Comments{},
	}

	if err := s.photoRepo.Create(ctx, p); err != nil {
		// The object is orphaned if this delete fails; acceptable, it is
		// unreferenced and harmless.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("orphan cleanup failed")
		}
		s.tracker.Abort(uploadID)
		s.logger.Error().Err(err).Str("photo_id", photoID.String()).Msg("photo create failed")
		return nil, ErrUploadFailed
	}

	s.tracker.Finish(uploadID)
	s.logger.Info().
		Str("photo_id", photoID.String()).
		Str("author_id", u.ID.String()).
		Int64("size", size).
		Msg("photo uploaded")

	return p, nil
}

// Progress returns the current state of an in-flight or recent upload.
func (s *Service) Progress(uploadID string) (*ProgressResponse, error) {
	p, done, ok := s.tracker.Get(uploadID)
	if !ok {
		return nil, ErrUploadNotFound
	}
	return &ProgressResponse{UploadID: uploadID, Done: done, Progress: p}, nil
}

// objectKey builds a storage key partitioned by upload month.
func objectKey(id uuid.UUID, ext string) string {
	return path.Join("photos", time.Now().UTC().Format("2006/01"), id.String()+ext)
}
