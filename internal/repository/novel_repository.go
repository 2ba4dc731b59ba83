package repository

import (
	"context"
	"fmt"

	"novelhub/internal/models"

	"gorm.io/gorm"
)

type NovelRepo struct {
	db *gorm.DB
}

func NewNovelRepo(db *gorm.DB) *NovelRepo {
	return &NovelRepo{db: db}
}

// List returns novels ordered by view count descending, optionally filtered
// to a single genre tag. Genres are persisted as a JSON array in a text
// column, so the filter matches the quoted tag.
func (r *NovelRepo) List(ctx context.Context, genre string, limit int) ([]models.Novel, error) {
	var list []models.Novel

	q := r.db.WithContext(ctx).Order("views desc").Limit(limit)
	if genre != "" {
		q = q.Where(`genres LIKE ?`, `%"`+genre+`"%`)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list novels: %w", err)
	}
	return list, nil
}

func (r *NovelRepo) GetByID(ctx context.Context, id int64) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NovelRepo) ListByUploader(ctx context.Context, userID string) ([]models.Novel, error) {
	var list []models.Novel
	if err := r.db.WithContext(ctx).
		Where("upload_by = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list novels by uploader: %w", err)
	}
	return list, nil
}

func (r *NovelRepo) Create(ctx context.Context, n *models.Novel) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create novel: %w", err)
	}
	// GORM populates n.ID and n.CreatedAt
	return nil
}

func (r *NovelRepo) Update(ctx context.Context, id int64, n *models.Novel) error {
	// ensure ID set for Save
	n.ID = id
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("update novel: %w", err)
	}
	return nil
}

func (r *NovelRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Novel{}, id).Error; err != nil {
		return fmt.Errorf("delete novel: %w", err)
	}
	return nil
}

// IncrementViews adds one to the novel view counter. The update is a single
// atomic column expression; the counter never moves backwards.
func (r *NovelRepo) IncrementViews(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Novel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return fmt.Errorf("increment novel views: %w", err)
	}
	return nil
}
