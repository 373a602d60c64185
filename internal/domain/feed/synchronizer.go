package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/photo"
)

// Store is the slice of photo persistence the synchronizer needs.
// photo.Repository satisfies it.
type Store interface {
	ListOrdered(ctx context.Context) ([]*photo.Photo, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*photo.Photo, error)
	ReplaceLikeCount(ctx context.Context, id uuid.UUID, count int) error
	AppendComment(ctx context.Context, id uuid.UUID, comment photo.Comment) error
}

// Identity is the acting user, snapshotted when the view is created.
// Comments written through the view carry this name even if the profile
// changes afterwards.
type Identity struct {
	UserID      uuid.UUID
	DisplayName string
}

// Scope selects which photos a synchronizer loads.
type Scope int

const (
	// ScopeFeed loads every photo, newest first.
	ScopeFeed Scope = iota
	// ScopeGallery loads only the identity's own photos.
	ScopeGallery
)

// Synchronizer owns a working set of photos copied out of the store at
// load time. Reads render from the working set alone; likes and comments
// write through to the store and, only on success, mutate the local copy.
// Changes made by other users are not observed until the next Load.
type Synchronizer struct {
	store     Store
	identity  Identity
	scope     Scope
	expansion *ExpansionState
	logger    zerolog.Logger

	mu     sync.Mutex
	photos []*photo.Photo
	loaded bool
}

// NewSynchronizer creates a synchronizer for one user and scope.
func NewSynchronizer(store Store, identity Identity, scope Scope, logger zerolog.Logger) *Synchronizer {
	mode := ExpandSingle
	if scope == ScopeGallery {
		mode = ExpandMulti
	}
	return &Synchronizer{
		store:     store,
		identity:  identity,
		scope:     scope,
		expansion: NewExpansionState(mode),
		logger:    logger.With().Str("component", "synchronizer").Logger(),
	}
}

// Load replaces the working set with a fresh snapshot from the store.
// Local edits that were never written through are discarded; expansion
// state is reset because the set it referred to is gone.
func (s *Synchronizer) Load(ctx context.Context) error {
	var (
		fetched []*photo.Photo
		err     error
	)
	switch s.scope {
	case ScopeGallery:
		fetched, err = s.store.ListByAuthor(ctx, s.identity.UserID)
	default:
		fetched, err = s.store.ListOrdered(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("load failed")
		return ErrFetchFailed
	}

	working := make([]*photo.Photo, len(fetched))
	for i, p := range fetched {
		working[i] = p.Clone()
	}

	s.mu.Lock()
	s.photos = working
	s.loaded = true
	s.expansion.Reset()
	s.mu.Unlock()
	return nil
}

// Like computes the target count from this view's copy and writes it to
// the store as an absolute value. Two views liking the same photo off the
// same stale count will both write the same target and one like is lost;
// resolving that would need a per-user like ledger, which the product
// does not have.
func (s *Synchronizer) Like(ctx context.Context, photoID uuid.UUID) (int, error) {
	s.mu.Lock()
	p := s.find(photoID)
	if p == nil {
		s.mu.Unlock()
		return 0, ErrPhotoNotInView
	}
	target := p.LikeCount + 1
	s.mu.Unlock()

	// Lock is released across the store call so a slow write never
	// blocks rendering this view.
	if err := s.store.ReplaceLikeCount(ctx, photoID, target); err != nil {
		s.logger.Error().Err(err).Str("photo_id", photoID.String()).Msg("like write failed")
		return 0, ErrLikeFailed
	}

	s.mu.Lock()
	if p := s.find(photoID); p != nil {
		p.LikeCount = target
	}
	s.mu.Unlock()
	return target, nil
}

// AddComment trims the text and appends it as the identity's comment.
// Blank text is a silent no-op: nothing is written, and both return
// values are nil.
func (s *Synchronizer) AddComment(ctx context.Context, photoID uuid.UUID, text string) (*photo.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.find(photoID) == nil {
		s.mu.Unlock()
		return nil, ErrPhotoNotInView
	}
	s.mu.Unlock()

	comment := photo.Comment{
		AuthorID:   s.identity.UserID,
		AuthorName: s.identity.DisplayName,
		Text:       trimmed,
	}

	if err := s.store.AppendComment(ctx, photoID, comment); err != nil {
		s.logger.Error().Err(err).Str("photo_id", photoID.String()).Msg("comment write failed")
		return nil, ErrCommentFailed
	}

	s.mu.Lock()
	if p := s.find(photoID); p != nil {
		p.Comments = append(p.Comments, comment)
	}
	s.mu.Unlock()
	return &comment, nil
}

// ToggleExpand flips a photo's comment thread and returns its new state.
func (s *Synchronizer) ToggleExpand(photoID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(photoID) == nil {
		return false, ErrPhotoNotInView
	}
	return s.expansion.Toggle(photoID), nil
}

// Photos returns a render snapshot of the working set, cloned so callers
// never alias view-internal state.
func (s *Synchronizer) Photos() ([]*photo.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrViewNotLoaded
	}
	out := make([]*photo.Photo, len(s.photos))
	for i, p := range s.photos {
		out[i] = p.Clone()
	}
	return out, nil
}

// IsExpanded reports whether a photo's thread is open in this view.
func (s *Synchronizer) IsExpanded(photoID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expansion.IsExpanded(photoID)
}

// find returns the working-set entry for id. Caller holds s.mu.
func (s *Synchronizer) find(id uuid.UUID) *photo.Photo {
	for _, p := range s.photos {
		if p.ID == id {
			return p
		}
	}
	return nil
}
