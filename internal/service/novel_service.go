package service

import (
	"context"
	"errors"

	"novelhub/internal/models"
	"novelhub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNovelNotFound = errors.New("novel not found")
	ErrNotOwner      = errors.New("not the owner of this novel")
)

const (
	// ExploreLimit caps the explore listing.
	ExploreLimit = 20
	// RankingLimit caps the ranking listing.
	RankingLimit = 50
)

// NovelService covers browsing and authoring. Mutations are restricted to
// the uploader; listings delegate ordering and filtering to the store.
type NovelService interface {
	Explore(ctx context.Context, genre string) ([]models.Novel, error)
	Rankings(ctx context.Context, genre string) ([]models.Novel, error)
	Get(ctx context.Context, id int64) (*models.Novel, error)
	Mine(ctx context.Context, userID string) ([]models.Novel, error)
	Create(ctx context.Context, userID string, novel *models.Novel) error
	Update(ctx context.Context, userID string, id int64, novel *models.Novel) error
	Delete(ctx context.Context, userID string, id int64) error

	Chapters(ctx context.Context, novelID int64) ([]models.Chapter, error)
	AddChapter(ctx context.Context, userID string, chapter *models.Chapter) error
	UpdateChapter(ctx context.Context, userID string, chapter *models.Chapter) error
	DeleteChapter(ctx context.Context, userID string, novelID, chapterID int64) error
}

type novelService struct {
	novels   *repository.NovelRepo
	chapters repository.ChapterRepository
}

func NewNovelService(novels *repository.NovelRepo, chapters repository.ChapterRepository) NovelService {
	return &novelService{novels: novels, chapters: chapters}
}

func (s *novelService) Explore(ctx context.Context, genre string) ([]models.Novel, error) {
	return s.novels.List(ctx, genre, ExploreLimit)
}

func (s *novelService) Rankings(ctx context.Context, genre string) ([]models.Novel, error) {
	return s.novels.List(ctx, genre, RankingLimit)
}

func (s *novelService) Get(ctx context.Context, id int64) (*models.Novel, error) {
	novel, err := s.novels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNovelNotFound
		}
		return nil, err
	}
	return novel, nil
}

func (s *novelService) Mine(ctx context.Context, userID string) ([]models.Novel, error) {
	return s.novels.ListByUploader(ctx, userID)
}

func (s *novelService) Create(ctx context.Context, userID string, novel *models.Novel) error {
	if err := models.ValidateGenres(novel.Genres); err != nil {
		return err
	}
	novel.UploadBy = userID
	novel.Views = 0
	return s.novels.Create(ctx, novel)
}

func (s *novelService) Update(ctx context.Context, userID string, id int64, novel *models.Novel) error {
	if err := models.ValidateGenres(novel.Genres); err != nil {
		return err
	}
	existing, err := s.requireOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	// ownership and counters survive edits
	novel.UploadBy = existing.UploadBy
	novel.Views = existing.Views
	novel.CreatedAt = existing.CreatedAt
	return s.novels.Update(ctx, id, novel)
}

func (s *novelService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.novels.Delete(ctx, id)
}

func (s *novelService) Chapters(ctx context.Context, novelID int64) ([]models.Chapter, error) {
	return s.chapters.ListByNovel(ctx, novelID)
}

func (s *novelService) AddChapter(ctx context.Context, userID string, chapter *models.Chapter) error {
	if _, err := s.requireOwned(ctx, userID, chapter.NovelID); err != nil {
		return err
	}
	chapter.Views = 0
	return s.chapters.Create(ctx, chapter)
}

func (s *novelService) UpdateChapter(ctx context.Context, userID string, chapter *models.Chapter) error {
	if _, err := s.requireOwned(ctx, userID, chapter.NovelID); err != nil {
		return err
	}
	existing, err := s.chapters.GetByID(ctx, chapter.NovelID, chapter.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNovelNotFound
		}
		return err
	}
	chapter.Views = existing.Views
	chapter.UploadedAt = existing.UploadedAt
	return s.chapters.Update(ctx, chapter)
}

func (s *novelService) DeleteChapter(ctx context.Context, userID string, novelID, chapterID int64) error {
	if _, err := s.requireOwned(ctx, userID, novelID); err != nil {
		return err
	}
	return s.chapters.Delete(ctx, novelID, chapterID)
}

func (s *novelService) requireOwned(ctx context.Context, userID string, novelID int64) (*models.Novel, error) {
	novel, err := s.novels.GetByID(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNovelNotFound
		}
		return nil, err
	}
	if novel.UploadBy != userID {
		return nil, ErrNotOwner
	}
	return novel, nil
}
