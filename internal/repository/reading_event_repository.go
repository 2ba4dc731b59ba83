package repository

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/models"

	"gorm.io/gorm"
)

// ReadingEventRepository aggregates chapters-completed counts per user per
// day. Writes come from the chapter completion path, reads from profile
// statistics.
type ReadingEventRepository interface {
	RecordCompletion(ctx context.Context, userID string, day time.Time) error
	CountsSince(ctx context.Context, userID string, since time.Time) ([]models.ReadingEvent, error)
}

type readingEventRepository struct {
	db *gorm.DB
}

func NewReadingEventRepository(db *gorm.DB) ReadingEventRepository {
	return &readingEventRepository{db: db}
}

// RecordCompletion bumps the day's counter, creating the row on first
// completion of the day.
func (r *readingEventRepository) RecordCompletion(ctx context.Context, userID string, day time.Time) error {
	date := models.DateOf(day)

	result := r.db.WithContext(ctx).
		Model(&models.ReadingEvent{}).
		Where("user_id = ? AND date = ?", userID, date).
		UpdateColumn("chapters_read", gorm.Expr("chapters_read + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("record completion: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	event := &models.ReadingEvent{UserID: userID, Date: date, ChaptersRead: 1}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create reading event: %w", err)
	}
	return nil
}

func (r *readingEventRepository) CountsSince(ctx context.Context, userID string, since time.Time) ([]models.ReadingEvent, error) {
	var events []models.ReadingEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, models.DateOf(since)).
		Order("date asc").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("reading counts: %w", err)
	}
	return events, nil
}
