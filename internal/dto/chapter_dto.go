package dto

import (
	"time"

	"novelhub/internal/models"
)

// CreateChapterDTO used for POST /api/novels/:id/chapters
type CreateChapterDTO struct {
	ChapterNumber int    `json:"chapter_number" binding:"required,gte=1"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

// UpdateChapterDTO used for PUT /api/novels/:id/chapters/:chapter_id
type UpdateChapterDTO struct {
	ChapterNumber int    `json:"chapter_number" binding:"required,gte=1"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

// ChapterResponse: chapter without its body, for listings
type ChapterResponse struct {
	ID            int64     `json:"id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	Views         int64     `json:"views"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// ChapterContentResponse: full chapter body for the reading surface
type ChapterContentResponse struct {
	ChapterResponse
	Content string `json:"content"`
}

func (d CreateChapterDTO) ToModel(novelID int64) models.Chapter {
	return models.Chapter{
		NovelID:       novelID,
		ChapterNumber: d.ChapterNumber,
		Title:         d.Title,
		Content:       d.Content,
	}
}

func FromChapterModel(c models.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:            c.ID,
		ChapterNumber: c.ChapterNumber,
		Title:         c.Title,
		Views:         c.Views,
		UploadedAt:    c.UploadedAt,
	}
}

func FromChapterModelWithContent(c models.Chapter) ChapterContentResponse {
	return ChapterContentResponse{
		ChapterResponse: FromChapterModel(c),
		Content:         c.Content,
	}
}
