package service

import (
	"context"
	"testing"
	"time"

	"novelhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) Add(ctx context.Context, userID string, novelID int64) error {
	args := m.Called(ctx, userID, novelID)
	return args.Error(0)
}

func (m *MockLibraryRepository) Remove(ctx context.Context, userID string, novelID int64) error {
	args := m.Called(ctx, userID, novelID)
	return args.Error(0)
}

func (m *MockLibraryRepository) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

func (m *MockLibraryRepository) Get(ctx context.Context, userID string, novelID int64) (*models.LibraryEntry, error) {
	args := m.Called(ctx, userID, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryEntry), args.Error(1)
}

func (m *MockLibraryRepository) Exists(ctx context.Context, userID string, novelID int64) (bool, error) {
	args := m.Called(ctx, userID, novelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLibraryRepository) UpsertLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error {
	args := m.Called(ctx, userID, novelID, chapterNumber, readAt)
	return args.Error(0)
}

func (m *MockLibraryRepository) RecentlyRead(ctx context.Context, userID string, limit int) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

type MockReadingEventRepository struct {
	mock.Mock
}

func (m *MockReadingEventRepository) RecordCompletion(ctx context.Context, userID string, day time.Time) error {
	args := m.Called(ctx, userID, day)
	return args.Error(0)
}

func (m *MockReadingEventRepository) CountsSince(ctx context.Context, userID string, since time.Time) ([]models.ReadingEvent, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingEvent), args.Error(1)
}

func TestProfileGet_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := NewProfileService(users, new(MockLibraryRepository), new(MockReadingEventRepository))
	user, err := svc.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}

func TestProfileUpdate_GenreCap(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewProfileService(users, new(MockLibraryRepository), new(MockReadingEventRepository))

	_, err := svc.Update(context.Background(), "user1", ProfileUpdate{
		Genres: []string{"Fantasy", "Romance", "Sci-Fi", "Horror"},
	})

	assert.ErrorIs(t, err, models.ErrTooManyGenres)
	users.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProfileUpdate_UsernameTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", "user1").Return(&models.User{ID: "user1", Username: "old"}, nil)
	users.On("FindByUsername", "taken").Return(&models.User{ID: "user2", Username: "taken"}, nil)

	svc := NewProfileService(users, new(MockLibraryRepository), new(MockReadingEventRepository))
	_, err := svc.Update(context.Background(), "user1", ProfileUpdate{Username: "taken"})

	assert.ErrorIs(t, err, ErrNameInUse)
	users.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProfileUpdate_Success(t *testing.T) {
	users := new(MockUserRepository)
	age := 21
	users.On("FindByID", "user1").Return(&models.User{ID: "user1", Username: "old"}, nil)
	users.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	users.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewProfileService(users, new(MockLibraryRepository), new(MockReadingEventRepository))
	user, err := svc.Update(context.Background(), "user1", ProfileUpdate{
		Username: "fresh",
		Age:      &age,
		Genres:   []string{"Fantasy"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "fresh", user.Username)
	assert.Equal(t, 21, *user.Age)
	assert.Equal(t, models.GenreList{"Fantasy"}, user.Genres)
	users.AssertExpectations(t)
}

func TestProfileStats_ZeroFilledWeek(t *testing.T) {
	library := new(MockLibraryRepository)
	readings := new(MockReadingEventRepository)

	now := time.Now()
	today := now.Format("2006-01-02")
	readings.On("CountsSince", mock.Anything, "user1", mock.AnythingOfType("time.Time")).Return(
		[]models.ReadingEvent{{UserID: "user1", Date: models.DateOf(now), ChaptersRead: 4}}, nil)
	library.On("RecentlyRead", mock.Anything, "user1", 5).Return([]models.LibraryEntry{}, nil)

	svc := NewProfileService(new(MockUserRepository), library, readings)
	stats, err := svc.Stats(context.Background(), "user1")

	assert.NoError(t, err)
	assert.Len(t, stats.Daily, 7)

	// days without completions appear with zero
	total := 0
	for _, d := range stats.Daily {
		total += d.Reads
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, today, stats.Daily[6].Date)
	assert.Equal(t, 4, stats.Daily[6].Reads)
}

func TestProfileStats_ScannedDatesLandOnTheirDay(t *testing.T) {
	library := new(MockLibraryRepository)
	readings := new(MockReadingEventRepository)

	// date columns come back from the store as midnight UTC timestamps
	now := time.Now()
	yesterday := models.DateOf(now.AddDate(0, 0, -1))
	readings.On("CountsSince", mock.Anything, "user1", mock.AnythingOfType("time.Time")).Return(
		[]models.ReadingEvent{
			{UserID: "user1", Date: yesterday, ChaptersRead: 2},
			{UserID: "user1", Date: models.DateOf(now), ChaptersRead: 1},
		}, nil)
	library.On("RecentlyRead", mock.Anything, "user1", 5).Return([]models.LibraryEntry{}, nil)

	svc := NewProfileService(new(MockUserRepository), library, readings)
	stats, err := svc.Stats(context.Background(), "user1")

	assert.NoError(t, err)
	assert.Equal(t, yesterday.Format("2006-01-02"), stats.Daily[5].Date)
	assert.Equal(t, 2, stats.Daily[5].Reads)
	assert.Equal(t, 1, stats.Daily[6].Reads)
}
