package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"novelhub/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNovelNotFound is returned when the requested novel does not exist.
	ErrNovelNotFound = errors.New("novel not found")
	// ErrChapterNotFound is returned when the chapter id is absent from the
	// novel's chapter list. Callers treat it exactly like a missing novel.
	ErrChapterNotFound = errors.New("chapter not found")
)

// NovelStore loads novel metadata.
type NovelStore interface {
	GetByID(ctx context.Context, id int64) (*models.Novel, error)
}

// ChapterLister loads a novel's chapters ordered ascending by chapter
// number.
type ChapterLister interface {
	ListByNovel(ctx context.Context, novelID int64) ([]models.Chapter, error)
}

// LastReadSaver persists a reader's last-read pointer.
type LastReadSaver interface {
	SaveLastRead(ctx context.Context, userID string, novelID int64, chapterNumber int, readAt time.Time) error
}

// ResolvedChapter is the session state for one chapter visit. Previous and
// Next are the list-adjacent chapters, nil at the boundaries; gaps in
// chapter numbering are irrelevant because adjacency is positional.
type ResolvedChapter struct {
	Novel    *models.Novel
	Current  *models.Chapter
	Previous *models.Chapter
	Next     *models.Chapter
}

// SessionResolver loads the session state for a chapter visit and, for
// signed-in readers, moves their last-read pointer as a fire-and-forget side
// effect. Anonymous readers get the same chapter content with the side
// effect skipped.
type SessionResolver struct {
	novels   NovelStore
	chapters ChapterLister
	progress LastReadSaver
	writer   *Writer
	logger   *slog.Logger
}

func NewSessionResolver(novels NovelStore, chapters ChapterLister, progress LastReadSaver, writer *Writer, logger *slog.Logger) *SessionResolver {
	return &SessionResolver{
		novels:   novels,
		chapters: chapters,
		progress: progress,
		writer:   writer,
		logger:   logger,
	}
}

// Resolve returns the session state for (novel, chapter). userID is empty
// for anonymous readers. The last-read write never blocks or fails the
// resolve: it is dispatched to the background writer and its outcome only
// shows up in logs.
func (s *SessionResolver) Resolve(ctx context.Context, novelID, chapterID int64, userID string) (*ResolvedChapter, error) {
	novel, err := s.novels.GetByID(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("resolve_novel_missing", "novel_id", novelID)
			return nil, ErrNovelNotFound
		}
		return nil, fmt.Errorf("load novel: %w", err)
	}

	chapters, err := s.chapters.ListByNovel(ctx, novelID)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}

	idx := -1
	for i := range chapters {
		if chapters[i].ID == chapterID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Debug("resolve_chapter_missing", "novel_id", novelID, "chapter_id", chapterID)
		return nil, ErrChapterNotFound
	}

	resolved := &ResolvedChapter{
		Novel:   novel,
		Current: &chapters[idx],
	}
	if idx > 0 {
		resolved.Previous = &chapters[idx-1]
	}
	if idx < len(chapters)-1 {
		resolved.Next = &chapters[idx+1]
	}

	if userID != "" {
		chapterNumber := resolved.Current.ChapterNumber
		readAt := time.Now()
		s.writer.Submit("library_last_read", func(taskCtx context.Context) error {
			return s.progress.SaveLastRead(taskCtx, userID, novelID, chapterNumber, readAt)
		})
	}

	return resolved, nil
}
