package service

import (
	"context"
	"errors"

	"novelhub/internal/models"
	"novelhub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyInLibrary = errors.New("novel already in library")
	ErrNotInLibrary     = errors.New("novel not in library")
)

type LibraryService interface {
	Add(ctx context.Context, userID string, novelID int64) error
	Remove(ctx context.Context, userID string, novelID int64) error
	List(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	Contains(ctx context.Context, userID string, novelID int64) (bool, error)
}

// LastReadForgetter drops any cached reading position for a user/novel pair.
// Satisfied by reader.ProgressStore.
type LastReadForgetter interface {
	Forget(ctx context.Context, userID string, novelID int64)
}

type libraryService struct {
	repo      repository.LibraryRepository
	novelRepo *repository.NovelRepo
	progress  LastReadForgetter
}

func NewLibraryService(repo repository.LibraryRepository, novelRepo *repository.NovelRepo, progress LastReadForgetter) LibraryService {
	return &libraryService{
		repo:      repo,
		novelRepo: novelRepo,
		progress:  progress,
	}
}

func (s *libraryService) Add(ctx context.Context, userID string, novelID int64) error {
	// Check if novel exists
	if _, err := s.novelRepo.GetByID(ctx, novelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNovelNotFound
		}
		return err
	}

	if err := s.repo.Add(ctx, userID, novelID); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return ErrAlreadyInLibrary
		}
		return err
	}
	return nil
}

// Remove drops the membership row and the cached reading position with it,
// so a re-added novel starts clean instead of resurfacing a stale last-read.
func (s *libraryService) Remove(ctx context.Context, userID string, novelID int64) error {
	if err := s.repo.Remove(ctx, userID, novelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInLibrary
		}
		return err
	}
	if s.progress != nil {
		s.progress.Forget(ctx, userID, novelID)
	}
	return nil
}

func (s *libraryService) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	return s.repo.List(ctx, userID)
}

func (s *libraryService) Contains(ctx context.Context, userID string, novelID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, novelID)
}
