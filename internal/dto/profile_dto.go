package dto

import (
	"time"

	"novelhub/internal/models"
	"novelhub/internal/service"
)

type ProfileResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Age       *int     `json:"age,omitempty"`
	Genres    []string `json:"genres"`
	CreatedAt string   `json:"created_at"`
}

type UpdateProfileRequest struct {
	Username *string   `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Age      *int      `json:"age,omitempty" binding:"omitempty,gte=13,lte=120"`
	Genres   *[]string `json:"genres,omitempty" binding:"omitempty,max=3"`
}

type DailyReadsResponse struct {
	Date         string `json:"date"`
	ChaptersRead int    `json:"chapters_read"`
}

type CurrentReadingResponse struct {
	Novel    *NovelResponse    `json:"novel,omitempty"`
	LastRead *LastReadResponse `json:"last_read,omitempty"`
}

type StatsResponse struct {
	Daily          []DailyReadsResponse     `json:"daily"`
	CurrentReading []CurrentReadingResponse `json:"current_reading"`
}

func FromUserModel(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
		Genres:    u.Genres,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func FromStats(s *service.ReadingStats) StatsResponse {
	resp := StatsResponse{
		Daily:          make([]DailyReadsResponse, 0, len(s.Daily)),
		CurrentReading: make([]CurrentReadingResponse, 0, len(s.CurrentReading)),
	}
	for _, d := range s.Daily {
		resp.Daily = append(resp.Daily, DailyReadsResponse{Date: d.Date, ChaptersRead: d.Reads})
	}
	for _, entry := range s.CurrentReading {
		var cr CurrentReadingResponse
		if entry.Novel != nil {
			novel := FromNovelModel(*entry.Novel)
			cr.Novel = &novel
		}
		if entry.LastReadChapter != nil && entry.LastReadAt != nil {
			cr.LastRead = &LastReadResponse{
				ChapterNumber: *entry.LastReadChapter,
				ReadAt:        *entry.LastReadAt,
			}
		}
		resp.CurrentReading = append(resp.CurrentReading, cr)
	}
	return resp
}
