package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// viewKey identifies one user's view of one scope.
type viewKey struct {
	userID uuid.UUID
	scope  Scope
}

type view struct {
	sync       *Synchronizer
	lastActive time.Time
}

// Views holds the live synchronizers, one per user and scope. A view is
// created and loaded on activation, reused by subsequent likes, comments
// and expands, and dropped after sitting idle past the TTL.
type Views struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger

	mu    sync.Mutex
	views map[viewKey]*view
}

// NewViews creates the view registry.
func NewViews(store Store, ttl time.Duration, logger zerolog.Logger) *Views {
	return &Views{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "views").Logger(),
		views:  make(map[viewKey]*view),
	}
}

// Activate returns the user's view for the scope, loading it fresh. Each
// activation is exactly one Load; mutations between activations work on
// the snapshot that Load produced.
func (v *Views) Activate(ctx context.Context, identity Identity, scope Scope) (*Synchronizer, error) {
	s := v.get(identity, scope, true)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the user's already-activated view for the scope, or
// ErrViewNotLoaded if they have not opened it yet.
func (v *Views) Get(identity Identity, scope Scope) (*Synchronizer, error) {
	s := v.get(identity, scope, false)
	if s == nil {
		return nil, ErrViewNotLoaded
	}
	return s, nil
}

func (v *Views) get(identity Identity, scope Scope, create bool) *Synchronizer {
	key := viewKey{userID: identity.UserID, scope: scope}

	v.mu.Lock()
	defer v.mu.Unlock()

	if e, ok := v.views[key]; ok {
		e.lastActive = time.Now()
		return e.sync
	}
	if !create {
		return nil
	}

	s := NewSynchronizer(v.store, identity, scope, v.logger)
	v.views[key] = &view{sync: s, lastActive: time.Now()}
	return s
}

// Cleanup drops views idle longer than the TTL.
func (v *Views) Cleanup() {
	v.mu.Lock()
	defer v.mu.Unlock()
	cutoff := time.Now().Add(-v.ttl)
	for key, e := range v.views {
		if e.lastActive.Before(cutoff) {
			delete(v.views, key)
		}
	}
}

// Run evicts idle views until the stop channel closes.
func (v *Views) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			v.Cleanup()
		case <-stop:
			return
		}
	}
}
