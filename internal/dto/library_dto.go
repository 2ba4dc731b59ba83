package dto

import "time"

// AddToLibraryRequest: payload to add a novel to the user's library
type AddToLibraryRequest struct {
	NovelID int64 `json:"novel_id" binding:"required"`
}

// LibraryResponse: response for a library item. Novel is nil when the entry
// was loaded without its association.
type LibraryResponse struct {
	ID              int64          `json:"id"`
	NovelID         int64          `json:"novel_id"`
	Novel           *NovelResponse `json:"novel,omitempty"`
	LastReadChapter *int           `json:"last_read_chapter,omitempty"`
	LastReadAt      *time.Time     `json:"last_read_at,omitempty"`
	AddedAt         time.Time      `json:"added_at"`
}

// LibraryListResponse: list of library items
type LibraryListResponse struct {
	Items []LibraryResponse `json:"items"`
	Total int               `json:"total"`
}
