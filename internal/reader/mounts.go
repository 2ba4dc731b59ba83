package reader

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrMountNotFound is returned for events addressed to a mount that was
// released, superseded or swept. Callers must discard such events silently;
// they come from abandoned page mounts.
var ErrMountNotFound = errors.New("reading mount not found")

// Completion carries the one-shot "chapter finished" signal emitted when a
// mount first reaches the bottom of its content.
type Completion struct {
	UserID        string // empty for anonymous readers
	NovelID       int64
	ChapterID     int64
	ChapterNumber int
}

// CompletionFunc consumes completion signals. It is invoked at most once per
// mount.
type CompletionFunc func(Completion)

// Mount is the scroll-completion detector for one (reader, novel, chapter)
// page mount. Two states: pending (initial) and completed (terminal). The
// transition fires exactly once; later scrolls, resizes and repeated boundary
// crossings are ignored.
type Mount struct {
	ID            string
	ReaderKey     string
	UserID        string
	NovelID       int64
	ChapterID     int64
	ChapterNumber int

	mu        sync.Mutex
	completed bool
	lastSeen  time.Time
}

// observe applies one scroll sample and reports whether this sample caused
// the pending -> completed transition. The boundary is inclusive and rounded
// up to tolerate sub-pixel layout jitter.
func (m *Mount) observe(scrollTop, viewportHeight, contentHeight float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSeen = time.Now()
	if m.completed {
		return false
	}
	if int(math.Ceil(scrollTop+viewportHeight)) >= int(contentHeight) {
		m.completed = true
		return true
	}
	return false
}

func (m *Mount) expired(now time.Time, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return now.Sub(m.lastSeen) > ttl
}

// MountRegistry tracks live mounts. A reader has at most one active mount:
// opening a chapter supersedes the previous mount, so scroll events still in
// flight from the abandoned page are discarded by mount-ID mismatch. Idle
// mounts are swept by a janitor after the configured TTL.
type MountRegistry struct {
	mu         sync.RWMutex
	byID       map[string]*Mount
	byReader   map[string]string // reader key -> current mount ID
	ttl        time.Duration
	onComplete CompletionFunc
	logger     *slog.Logger
}

func NewMountRegistry(ttl time.Duration, onComplete CompletionFunc, logger *slog.Logger) *MountRegistry {
	return &MountRegistry{
		byID:       make(map[string]*Mount),
		byReader:   make(map[string]string),
		ttl:        ttl,
		onComplete: onComplete,
		logger:     logger,
	}
}

// Open registers a fresh mount for a reader on a chapter and supersedes any
// mount the reader had open. Every mount starts pending, so revisiting a
// chapter gets its own one-shot detector.
func (r *MountRegistry) Open(readerKey, userID string, novelID, chapterID int64, chapterNumber int) *Mount {
	mount := &Mount{
		ID:            uuid.New().String(),
		ReaderKey:     readerKey,
		UserID:        userID,
		NovelID:       novelID,
		ChapterID:     chapterID,
		ChapterNumber: chapterNumber,
		lastSeen:      time.Now(),
	}

	r.mu.Lock()
	if prevID, ok := r.byReader[readerKey]; ok {
		delete(r.byID, prevID)
	}
	r.byID[mount.ID] = mount
	r.byReader[readerKey] = mount.ID
	r.mu.Unlock()

	return mount
}

// Observe feeds one scroll sample to a mount. The completion callback runs
// synchronously on the first bottom-reach and never again for this mount.
// Unknown mount IDs report ErrMountNotFound.
func (r *MountRegistry) Observe(mountID string, scrollTop, viewportHeight, contentHeight float64) (bool, error) {
	r.mu.RLock()
	mount, ok := r.byID[mountID]
	r.mu.RUnlock()
	if !ok {
		return false, ErrMountNotFound
	}

	if !mount.observe(scrollTop, viewportHeight, contentHeight) {
		return false, nil
	}

	if r.onComplete != nil {
		r.onComplete(Completion{
			UserID:        mount.UserID,
			NovelID:       mount.NovelID,
			ChapterID:     mount.ChapterID,
			ChapterNumber: mount.ChapterNumber,
		})
	}
	return true, nil
}

// Release detaches a mount on page unmount. Releasing an already-gone mount
// is a no-op.
func (r *MountRegistry) Release(mountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mount, ok := r.byID[mountID]
	if !ok {
		return
	}
	delete(r.byID, mountID)
	if r.byReader[mount.ReaderKey] == mountID {
		delete(r.byReader, mount.ReaderKey)
	}
}

// Count returns the number of live mounts.
func (r *MountRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// CleanupExpired removes mounts idle past the TTL.
func (r *MountRegistry) CleanupExpired() {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, mount := range r.byID {
		if mount.expired(now, r.ttl) {
			delete(r.byID, id)
			if r.byReader[mount.ReaderKey] == id {
				delete(r.byReader, mount.ReaderKey)
			}
		}
	}
}

// StartJanitor sweeps expired mounts until the context is cancelled.
func (r *MountRegistry) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := r.Count()
			r.CleanupExpired()
			if removed := before - r.Count(); removed > 0 {
				r.logger.Debug("mounts_swept", "removed", removed)
			}
		}
	}
}
