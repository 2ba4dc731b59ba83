package reader

import (
	"context"
	"log/slog"
)

// ChapterCounterStore increments a chapter's view counter, atomically at the
// store.
type ChapterCounterStore interface {
	IncrementViews(ctx context.Context, chapterID int64) error
}

// NovelCounterStore increments a novel's view counter.
type NovelCounterStore interface {
	IncrementViews(ctx context.Context, novelID int64) error
}

// ViewCounter applies view-count increments. It is called at most once per
// completion signal (the mount registry guarantees the one-shot) and once per
// novel detail load; every increment is dispatched to the background writer
// under the best-effort contract.
type ViewCounter struct {
	chapters ChapterCounterStore
	novels   NovelCounterStore
	writer   *Writer
	logger   *slog.Logger
}

func NewViewCounter(chapters ChapterCounterStore, novels NovelCounterStore, writer *Writer, logger *slog.Logger) *ViewCounter {
	return &ViewCounter{
		chapters: chapters,
		novels:   novels,
		writer:   writer,
		logger:   logger,
	}
}

// ChapterCompleted records one chapter view for a completion signal.
func (c *ViewCounter) ChapterCompleted(novelID, chapterID int64) {
	c.logger.Debug("chapter_completed", "novel_id", novelID, "chapter_id", chapterID)
	c.writer.Submit("chapter_view_increment", func(ctx context.Context) error {
		return c.chapters.IncrementViews(ctx, chapterID)
	})
}

// NovelViewed records one novel view for a detail page load.
func (c *ViewCounter) NovelViewed(novelID int64) {
	c.writer.Submit("novel_view_increment", func(ctx context.Context) error {
		return c.novels.IncrementViews(ctx, novelID)
	})
}
