package reader

import (
	"context"
	"testing"
	"time"

	"novelhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockNovelStore struct {
	mock.Mock
}

func (m *MockNovelStore) GetByID(ctx context.Context, id int64) (*models.Novel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Novel), args.Error(1)
}

type MockChapterLister struct {
	mock.Mock
}

func (m *MockChapterLister) ListByNovel(ctx context.Context, novelID int64) ([]models.Chapter, error) {
	args := m.Called(ctx, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

type MockLastReadSaver struct {
	mock.Mock
}

func (m *MockLastReadSaver) SaveLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error {
	args := m.Called(ctx, userID, novelID, chapterNumber, readAt)
	return args.Error(0)
}

func chapterFixtures(novelID int64) []models.Chapter {
	return []models.Chapter{
		{ID: 10, NovelID: novelID, ChapterNumber: 1, Title: "One"},
		{ID: 11, NovelID: novelID, ChapterNumber: 2, Title: "Two"},
		{ID: 12, NovelID: novelID, ChapterNumber: 5, Title: "Five"}, // numbering gap
	}
}

func TestResolve_MiddleChapter(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	saver := new(MockLastReadSaver)
	writer := NewWriter(1, testLogger())
	writer.Start()

	novel := &models.Novel{ID: 1, Title: "The Long Night"}
	novels.On("GetByID", mock.Anything, int64(1)).Return(novel, nil)
	chapters.On("ListByNovel", mock.Anything, int64(1)).Return(chapterFixtures(1), nil)

	resolver := NewSessionResolver(novels, chapters, saver, writer, testLogger())
	resolved, err := resolver.Resolve(context.Background(), 1, 11, "")
	writer.Shutdown()

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resolved.Current.ID)
	assert.Equal(t, int64(10), resolved.Previous.ID)
	assert.Equal(t, int64(12), resolved.Next.ID)
	// anonymous resolve writes nothing
	saver.AssertNotCalled(t, "SaveLastRead", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_BoundaryChapters(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	writer := NewWriter(1, testLogger())
	writer.Start()
	defer writer.Shutdown()

	novel := &models.Novel{ID: 1}
	novels.On("GetByID", mock.Anything, int64(1)).Return(novel, nil)
	chapters.On("ListByNovel", mock.Anything, int64(1)).Return(chapterFixtures(1), nil)

	resolver := NewSessionResolver(novels, chapters, new(MockLastReadSaver), writer, testLogger())

	first, err := resolver.Resolve(context.Background(), 1, 10, "")
	assert.NoError(t, err)
	assert.Nil(t, first.Previous)
	assert.Equal(t, int64(11), first.Next.ID)

	last, err := resolver.Resolve(context.Background(), 1, 12, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(11), last.Previous.ID)
	assert.Nil(t, last.Next)
}

func TestResolve_AdjacencyIsPositional(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	writer := NewWriter(1, testLogger())
	writer.Start()
	defer writer.Shutdown()

	novels.On("GetByID", mock.Anything, int64(1)).Return(&models.Novel{ID: 1}, nil)
	chapters.On("ListByNovel", mock.Anything, int64(1)).Return(chapterFixtures(1), nil)

	resolver := NewSessionResolver(novels, chapters, new(MockLastReadSaver), writer, testLogger())

	// chapter numbered 2 is followed by chapter numbered 5
	resolved, err := resolver.Resolve(context.Background(), 1, 11, "")
	assert.NoError(t, err)
	assert.Equal(t, 5, resolved.Next.ChapterNumber)
}

func TestResolve_SignedInMovesLastRead(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	saver := new(MockLastReadSaver)
	writer := NewWriter(1, testLogger())
	writer.Start()

	novels.On("GetByID", mock.Anything, int64(1)).Return(&models.Novel{ID: 1}, nil)
	chapters.On("ListByNovel", mock.Anything, int64(1)).Return(chapterFixtures(1), nil)
	saver.On("SaveLastRead", mock.Anything, "user1", int64(1), 2, mock.AnythingOfType("time.Time")).Return(nil)

	resolver := NewSessionResolver(novels, chapters, saver, writer, testLogger())
	_, err := resolver.Resolve(context.Background(), 1, 11, "user1")

	// the pointer write is dispatched in the background; draining the
	// writer makes it observable
	writer.Shutdown()

	assert.NoError(t, err)
	saver.AssertExpectations(t)
}

func TestResolve_NovelMissing(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	writer := NewWriter(1, testLogger())
	writer.Start()
	defer writer.Shutdown()

	novels.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	resolver := NewSessionResolver(novels, chapters, new(MockLastReadSaver), writer, testLogger())
	resolved, err := resolver.Resolve(context.Background(), 99, 10, "")

	assert.ErrorIs(t, err, ErrNovelNotFound)
	assert.Nil(t, resolved)
}

func TestResolve_ChapterMissing(t *testing.T) {
	novels := new(MockNovelStore)
	chapters := new(MockChapterLister)
	writer := NewWriter(1, testLogger())
	writer.Start()
	defer writer.Shutdown()

	novels.On("GetByID", mock.Anything, int64(1)).Return(&models.Novel{ID: 1}, nil)
	chapters.On("ListByNovel", mock.Anything, int64(1)).Return(chapterFixtures(1), nil)

	resolver := NewSessionResolver(novels, chapters, new(MockLastReadSaver), writer, testLogger())
	resolved, err := resolver.Resolve(context.Background(), 1, 999, "")

	assert.ErrorIs(t, err, ErrChapterNotFound)
	assert.Nil(t, resolved)
}
