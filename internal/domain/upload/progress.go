package upload

import (
	"sync"
	"time"

	"github.com/minstagram/minstagram-api/internal/pkg/storage"
)

// retention is how long a finished upload's progress stays queryable.
const retention = 5 * time.Minute

type entry struct {
	progress   storage.Progress
	done       bool
	finishedAt time.Time
}

// Tracker keeps in-memory progress for in-flight uploads so clients can
// poll {bytes_transferred, total_bytes} while the file streams.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewTracker creates an upload progress tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*entry)}
}

// Start registers an upload with its total size.
func (t *Tracker) Start(id string, totalBytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = &entry{progress: storage.Progress{TotalBytes: totalBytes}}
}

// Update records a progress snapshot for an upload.
func (t *Tracker) Update(id string, p storage.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		e.progress = p
	}
}

// Finish marks an upload complete. The entry stays around briefly so a
// final poll still sees bytes_transferred == total_bytes.
func (t *Tracker) Finish(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		e.progress.BytesTransferred = e.progress.TotalBytes
		e.done = true
		e.finishedAt = time.Now()
	}
}

// Abort drops an upload that failed.
func (t *Tracker) Abort(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Get returns the current progress of an upload.
func (t *Tracker) Get(id string) (storage.Progress, bool, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[id]
	if !ok {
		return storage.Progress{}, false, false
	}
	return e.progress, e.done, true
}

// Cleanup removes finished entries older than the retention window.
// Call it periodically from a background goroutine.
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := time.Now().Add(-retention)
	for id, e := range t.entries {
		if e.done && e.finishedAt.Before(cutoff) {
			delete(t.entries, id)
		}
	}
}

// Run cleans up finished entries until the stop channel closes.
func (t *Tracker) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.Cleanup()
		case <-stop:
			return
		}
	}
}
