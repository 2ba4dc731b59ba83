package dto

import (
	"time"

	"novelhub/internal/models"
)

// CreateNovelDTO used for POST /api/novels
type CreateNovelDTO struct {
	Title            string   `json:"title" binding:"required"`
	Author           string   `json:"author" binding:"required"` // pen name
	LeadingCharacter string   `json:"leading_character" binding:"required,oneof=male female"`
	Story            string   `json:"story" binding:"required"`
	CoverURL         *string  `json:"cover_url,omitempty"`
	Genres           []string `json:"genres" binding:"required,min=1,max=3"`
}

// UpdateNovelDTO used for PUT /api/novels/:id
type UpdateNovelDTO struct {
	Title            string   `json:"title" binding:"required"`
	Author           string   `json:"author" binding:"required"`
	LeadingCharacter string   `json:"leading_character" binding:"required,oneof=male female"`
	Story            string   `json:"story" binding:"required"`
	CoverURL         *string  `json:"cover_url,omitempty"`
	Genres           []string `json:"genres" binding:"required,min=1,max=3"`
}

// NovelResponse DTO for responses
type NovelResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	UploadBy         string    `json:"upload_by"`
	Views            int64     `json:"views"`
	LeadingCharacter string    `json:"leading_character"`
	Story            string    `json:"story"`
	CoverURL         *string   `json:"cover_url,omitempty"`
	Genres           []string  `json:"genres"`
	CreatedAt        time.Time `json:"created_at"`
}

// NovelDetailResponse: novel plus its ordered chapters and, when signed in,
// library state.
type NovelDetailResponse struct {
	Novel     NovelResponse     `json:"novel"`
	Chapters  []ChapterResponse `json:"chapters"`
	InLibrary bool              `json:"in_library"`
	LastRead  *LastReadResponse `json:"last_read,omitempty"`
}

// Converters
func (d CreateNovelDTO) ToModel() models.Novel {
	return models.Novel{
		Title:            d.Title,
		Author:           d.Author,
		LeadingCharacter: d.LeadingCharacter,
		Story:            d.Story,
		CoverURL:         d.CoverURL,
		Genres:           models.GenreList(d.Genres),
	}
}

func (d UpdateNovelDTO) ToModel() models.Novel {
	return models.Novel{
		Title:            d.Title,
		Author:           d.Author,
		LeadingCharacter: d.LeadingCharacter,
		Story:            d.Story,
		CoverURL:         d.CoverURL,
		Genres:           models.GenreList(d.Genres),
	}
}

func FromNovelModel(n models.Novel) NovelResponse {
	return NovelResponse{
		ID:               n.ID,
		Title:            n.Title,
		Author:           n.Author,
		UploadBy:         n.UploadBy,
		Views:            n.Views,
		LeadingCharacter: n.LeadingCharacter,
		Story:            n.Story,
		CoverURL:         n.CoverURL,
		Genres:           []string(n.Genres),
		CreatedAt:        n.CreatedAt,
	}
}
