package service

import (
	"context"
	"testing"

	"novelhub/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Add goes through the concrete novel repository, so only the paths that
// stay on the LibraryRepository interface are covered here.

func TestLibraryRemove_NotInLibrary(t *testing.T) {
	repo := new(MockLibraryRepository)
	repo.On("Remove", context.Background(), "user1", int64(1)).Return(gorm.ErrRecordNotFound)

	svc := NewLibraryService(repo, nil, nil)
	err := svc.Remove(context.Background(), "user1", 1)

	assert.ErrorIs(t, err, ErrNotInLibrary)
	repo.AssertExpectations(t)
}

func TestLibraryRemove_Success(t *testing.T) {
	repo := new(MockLibraryRepository)
	repo.On("Remove", context.Background(), "user1", int64(1)).Return(nil)

	svc := NewLibraryService(repo, nil, nil)
	assert.NoError(t, svc.Remove(context.Background(), "user1", 1))
	repo.AssertExpectations(t)
}

type recordingForgetter struct {
	userID  string
	novelID int64
	calls   int
}

func (f *recordingForgetter) Forget(ctx context.Context, userID string, novelID int64) {
	f.userID = userID
	f.novelID = novelID
	f.calls++
}

func TestLibraryRemove_DropsCachedProgress(t *testing.T) {
	repo := new(MockLibraryRepository)
	repo.On("Remove", context.Background(), "user1", int64(7)).Return(nil)

	forgetter := &recordingForgetter{}
	svc := NewLibraryService(repo, nil, forgetter)

	assert.NoError(t, svc.Remove(context.Background(), "user1", 7))
	assert.Equal(t, 1, forgetter.calls)
	assert.Equal(t, "user1", forgetter.userID)
	assert.Equal(t, int64(7), forgetter.novelID)
}

func TestLibraryRemove_MissingRowSkipsForget(t *testing.T) {
	repo := new(MockLibraryRepository)
	repo.On("Remove", context.Background(), "user1", int64(7)).Return(gorm.ErrRecordNotFound)

	forgetter := &recordingForgetter{}
	svc := NewLibraryService(repo, nil, forgetter)

	assert.ErrorIs(t, svc.Remove(context.Background(), "user1", 7), ErrNotInLibrary)
	assert.Equal(t, 0, forgetter.calls)
}

func TestLibraryList(t *testing.T) {
	repo := new(MockLibraryRepository)
	entries := []models.LibraryEntry{
		{ID: 1, UserID: "user1", NovelID: 7},
		{ID: 2, UserID: "user1", NovelID: 9},
	}
	repo.On("List", context.Background(), "user1").Return(entries, nil)

	svc := NewLibraryService(repo, nil, nil)
	got, err := svc.List(context.Background(), "user1")

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestLibraryContains(t *testing.T) {
	repo := new(MockLibraryRepository)
	repo.On("Exists", context.Background(), "user1", int64(7)).Return(true, nil)

	svc := NewLibraryService(repo, nil, nil)
	ok, err := svc.Contains(context.Background(), "user1", 7)

	assert.NoError(t, err)
	assert.True(t, ok)
}
