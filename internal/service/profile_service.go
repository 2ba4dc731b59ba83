package service

import (
	"context"
	"errors"
	"time"

	"novelhub/internal/models"
	"novelhub/internal/repository"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// statsWindowDays is the span of the reading-activity series on the profile
// page.
const statsWindowDays = 7

// DailyReads is one bar of the 7-day reading chart.
type DailyReads struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Reads int    `json:"reads"`
}

// ReadingStats is what the profile page renders: a dense 7-day series
// (zero-filled) plus the novels most recently read.
type ReadingStats struct {
	Daily          []DailyReads          `json:"daily"`
	CurrentReading []models.LibraryEntry `json:"current_reading"`
}

// ProfileUpdate carries editable profile fields.
type ProfileUpdate struct {
	Username string
	Age      *int
	Genres   []string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)
	Stats(ctx context.Context, userID string) (*ReadingStats, error)
}

type profileService struct {
	users    repository.UserRepository
	library  repository.LibraryRepository
	readings repository.ReadingEventRepository
}

func NewProfileService(users repository.UserRepository, library repository.LibraryRepository, readings repository.ReadingEventRepository) ProfileService {
	return &profileService{
		users:    users,
		library:  library,
		readings: readings,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update edits the profile. An oversized or unknown genre selection is
// rejected before any store call.
func (s *profileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	if err := models.ValidateGenres(update.Genres); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Username != "" && update.Username != user.Username {
		if _, err := s.users.FindByUsername(update.Username); err == nil {
			return nil, ErrNameInUse
		}
		user.Username = update.Username
	}
	user.Age = update.Age
	user.Genres = models.GenreList(update.Genres)

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats builds the 7-day reading series, filling days without completions
// with zero, and attaches the five most recently read novels.
func (s *profileService) Stats(ctx context.Context, userID string) (*ReadingStats, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -(statsWindowDays - 1))

	events, err := s.readings.CountsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	// Day() normalizes the driver's midnight time.Time back to YYYY-MM-DD
	byDate := make(map[string]int, len(events))
	for _, e := range events {
		byDate[e.Day()] = e.ChaptersRead
	}

	daily := make([]DailyReads, 0, statsWindowDays)
	for i := 0; i < statsWindowDays; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		daily = append(daily, DailyReads{Date: date, Reads: byDate[date]})
	}

	recent, err := s.library.RecentlyRead(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &ReadingStats{
		Daily:          daily,
		CurrentReading: recent,
	}, nil
}
