package repository

import (
	"context"
	"fmt"

	"novelhub/internal/models"

	"gorm.io/gorm"
)

// ChapterRepository provides access to the chapters of a novel. The ordered
// list drives the reader's prev/next resolution, so ascending chapter_number
// order is part of the contract.
type ChapterRepository interface {
	ListByNovel(ctx context.Context, novelID int64) ([]models.Chapter, error)
	GetByID(ctx context.Context, novelID, chapterID int64) (*models.Chapter, error)
	Create(ctx context.Context, c *models.Chapter) error
	Update(ctx context.Context, c *models.Chapter) error
	Delete(ctx context.Context, novelID, chapterID int64) error
	IncrementViews(ctx context.Context, chapterID int64) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) ListByNovel(ctx context.Context, novelID int64) ([]models.Chapter, error) {
	var list []models.Chapter
	if err := r.db.WithContext(ctx).
		Where("novel_id = ?", novelID).
		Order("chapter_number asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return list, nil
}

func (r *chapterRepository) GetByID(ctx context.Context, novelID, chapterID int64) (*models.Chapter, error) {
	var c models.Chapter
	if err := r.db.WithContext(ctx).
		Where("novel_id = ? AND id = ?", novelID, chapterID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) Delete(ctx context.Context, novelID, chapterID int64) error {
	result := r.db.WithContext(ctx).
		Where("novel_id = ? AND id = ?", novelID, chapterID).
		Delete(&models.Chapter{})
	if result.Error != nil {
		return fmt.Errorf("delete chapter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews adds one view, atomically at the store.
func (r *chapterRepository) IncrementViews(ctx context.Context, chapterID int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Chapter{}).
		Where("id = ?", chapterID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return fmt.Errorf("increment chapter views: %w", err)
	}
	return nil
}
