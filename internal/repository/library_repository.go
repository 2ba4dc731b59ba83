package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"novelhub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateEntry is returned when a novel is added to a library it is
// already in.
var ErrDuplicateEntry = errors.New("novel already in library")

type LibraryRepository interface {
	Add(ctx context.Context, userID string, novelID int64) error
	Remove(ctx context.Context, userID string, novelID int64) error
	List(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	Get(ctx context.Context, userID string, novelID int64) (*models.LibraryEntry, error)
	Exists(ctx context.Context, userID string, novelID int64) (bool, error)
	UpsertLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error
	RecentlyRead(ctx context.Context, userID string, limit int) ([]models.LibraryEntry, error)
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Add(ctx context.Context, userID string, novelID int64) error {
	entry := &models.LibraryEntry{
		UserID:  userID,
		NovelID: novelID,
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		// unique_violation on (user_id, novel_id)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("add to library: %w", err)
	}
	return nil
}

func (r *libraryRepository) Remove(ctx context.Context, userID string, novelID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Delete(&models.LibraryEntry{})

	if result.Error != nil {
		return fmt.Errorf("remove from library: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *libraryRepository) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	var library []models.LibraryEntry

	if err := r.db.WithContext(ctx).
		Preload("Novel").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&library).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return library, nil
}

func (r *libraryRepository) Get(ctx context.Context, userID string, novelID int64) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *libraryRepository) Exists(ctx context.Context, userID string, novelID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertLastRead moves the last-read pointer for (user, novel). The entry is
// created when the reader has not explicitly added the novel yet; AddedAt
// then marks the first visit. Only the last-read fields are ever updated.
func (r *libraryRepository) UpsertLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Updates(map[string]any{
			"last_read_chapter": chapterNumber,
			"last_read_at":      readAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update last read: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	entry := &models.LibraryEntry{
		UserID:          userID,
		NovelID:         novelID,
		LastReadChapter: &chapterNumber,
		LastReadAt:      &readAt,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		// Lost a race with a concurrent upsert; the other write carried a
		// current pointer, so treat as done.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return fmt.Errorf("create last read entry: %w", err)
	}
	return nil
}

// RecentlyRead returns the library entries most recently read, newest first.
func (r *libraryRepository) RecentlyRead(ctx context.Context, userID string, limit int) ([]models.LibraryEntry, error) {
	var library []models.LibraryEntry
	if err := r.db.WithContext(ctx).
		Preload("Novel").
		Where("user_id = ? AND last_read_at IS NOT NULL", userID).
		Order("last_read_at DESC").
		Limit(limit).
		Find(&library).Error; err != nil {
		return nil, fmt.Errorf("recently read: %w", err)
	}
	return library, nil
}
