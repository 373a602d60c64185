package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/photo"
)

func TestActivateLoadsView(t *testing.T) {
	p := seedPhoto(uuid.New(), 2)
	store := &fakeStore{photos: []*photo.Photo{p}}
	views := NewViews(store, time.Hour, zerolog.Nop())
	identity := Identity{UserID: uuid.New(), DisplayName: "Viewer"}

	s, err := views.Activate(context.Background(), identity, ScopeFeed)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	photos, err := s.Photos()
	if err != nil {
		t.Fatalf("Photos() error = %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("len(photos) = %d, want 1", len(photos))
	}
}

func TestGetBeforeActivate(t *testing.T) {
	views := NewViews(&fakeStore{}, time.Hour, zerolog.Nop())

	_, err := views.Get(Identity{UserID: uuid.New()}, ScopeFeed)
	if !errors.Is(err, ErrViewNotLoaded) {
		t.Errorf("Get() error = %v, want ErrViewNotLoaded", err)
	}
}

func TestActivateReusesViewPerScope(t *testing.T) {
	p := seedPhoto(uuid.New(), 0)
	store := &fakeStore{photos: []*photo.Photo{p}}
	views := NewViews(store, time.Hour, zerolog.Nop())
	identity := Identity{UserID: uuid.New(), DisplayName: "Viewer"}

	a, err := views.Activate(context.Background(), identity, ScopeFeed)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	b, err := views.Get(Identity{UserID: identity.UserID}, ScopeFeed)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if a != b {
		t.Error("Get() returned a different synchronizer than Activate()")
	}
}

func TestFeedAndGalleryAreSeparateViews(t *testing.T) {
	owner := uuid.New()
	store := &fakeStore{photos: []*photo.Photo{seedPhoto(owner, 0)}}
	views := NewViews(store, time.Hour, zerolog.Nop())
	identity := Identity{UserID: owner, DisplayName: "Owner"}

	feedView, err := views.Activate(context.Background(), identity, ScopeFeed)
	if err != nil {
		t.Fatalf("Activate(feed) error = %v", err)
	}
	galleryView, err := views.Activate(context.Background(), identity, ScopeGallery)
	if err != nil {
		t.Fatalf("Activate(gallery) error = %v", err)
	}
	if feedView == galleryView {
		t.Error("feed and gallery share a synchronizer")
	}
}

func TestCleanupEvictsIdleViews(t *testing.T) {
	store := &fakeStore{}
	views := NewViews(store, time.Millisecond, zerolog.Nop())
	identity := Identity{UserID: uuid.New(), DisplayName: "Viewer"}

	if _, err := views.Activate(context.Background(), identity, ScopeFeed); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	views.Cleanup()

	if _, err := views.Get(Identity{UserID: identity.UserID}, ScopeFeed); !errors.Is(err, ErrViewNotLoaded) {
		t.Errorf("Get() after eviction error = %v, want ErrViewNotLoaded", err)
	}
}

func TestActivateFailurePropagates(t *testing.T) {
	store := &fakeStore{listErr: errors.New("backend down")}
	views := NewViews(store, time.Hour, zerolog.Nop())

	_, err := views.Activate(context.Background(), Identity{UserID: uuid.New()}, ScopeFeed)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Activate() error = %v, want ErrFetchFailed", err)
	}
}
