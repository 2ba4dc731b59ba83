package dto

import "time"

// ChapterReadResponse: session state for one chapter visit. MountID
// identifies this page mount; scroll events must carry it back.
type ChapterReadResponse struct {
	MountID  string                 `json:"mount_id"`
	Novel    NovelResponse          `json:"novel"`
	Chapter  ChapterContentResponse `json:"chapter"`
	Previous *ChapterResponse       `json:"previous,omitempty"`
	Next     *ChapterResponse       `json:"next,omitempty"`
}

// ScrollEventRequest: one reading-surface scroll sample. Heights are raw
// layout values; the detector does the rounding.
type ScrollEventRequest struct {
	ScrollTop      float64 `json:"scroll_top" binding:"gte=0"`
	ViewportHeight float64 `json:"viewport_height" binding:"required,gt=0"`
	ContentHeight  float64 `json:"content_height" binding:"required,gt=0"`
}

// ScrollEventResponse reports whether this sample completed the chapter.
type ScrollEventResponse struct {
	Completed bool `json:"completed"`
}

// LastReadResponse: a reader's stored position in a novel.
type LastReadResponse struct {
	ChapterNumber int       `json:"chapter_number"`
	ReadAt        time.Time `json:"read_at"`
}
