package reader

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"novelhub/internal/repository"

	"gorm.io/gorm"
)

// ProgressStore combines the Redis cache and the library table for last-read
// tracking. Writes go to both (cache first, it serves reads); reads try the
// cache and fall back to the database, warming the cache on the way back.
type ProgressStore struct {
	cache   *ProgressRedisCache
	library repository.LibraryRepository
	logger  *slog.Logger
}

func NewProgressStore(cache *ProgressRedisCache, library repository.LibraryRepository, logger *slog.Logger) *ProgressStore {
	return &ProgressStore{
		cache:   cache,
		library: library,
		logger:  logger,
	}
}

// SaveLastRead persists the pointer. A cache failure is logged and does not
// block the durable write.
func (s *ProgressStore) SaveLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error {
	if err := s.cache.SaveLastRead(ctx, &LastRead{
		UserID:        userID,
		NovelID:       novelID,
		ChapterNumber: chapterNumber,
		ReadAt:        readAt,
	}); err != nil {
		s.logger.Warn("progress_cache_save_failed", "user_id", userID, "novel_id", novelID, "error", err)
	}

	return s.library.UpsertLastRead(ctx, userID, novelID, chapterNumber, readAt)
}

// LastRead returns the reader's position in a novel, nil when they have
// none.
func (s *ProgressStore) LastRead(ctx context.Context, userID string, novelID int64) (*LastRead, error) {
	if data, err := s.cache.GetLastRead(ctx, userID, novelID); err == nil && data != nil {
		return data, nil
	} else if err != nil {
		s.logger.Debug("progress_cache_read_failed", "user_id", userID, "error", err)
	}

	entry, err := s.library.Get(ctx, userID, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if entry.LastReadChapter == nil || entry.LastReadAt == nil {
		return nil, nil
	}

	data := &LastRead{
		UserID:        userID,
		NovelID:       novelID,
		ChapterNumber: *entry.LastReadChapter,
		ReadAt:        *entry.LastReadAt,
	}

	// Warm the cache off the request path.
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.cache.SaveLastRead(warmCtx, data); err != nil {
			s.logger.Debug("progress_cache_warm_failed", "user_id", userID, "error", err)
		}
	}()

	return data, nil
}

// Forget drops the cached pointer for (user, novel).
func (s *ProgressStore) Forget(ctx context.Context, userID string, novelID int64) {
	if err := s.cache.DeleteLastRead(ctx, userID, novelID); err != nil {
		s.logger.Debug("progress_cache_delete_failed", "user_id", userID, "error", err)
	}
}
