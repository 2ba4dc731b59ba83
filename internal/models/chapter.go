package models

import "time"

// Chapter is a single installment of a novel. ChapterNumber defines reading
// order; numbers ascend but are not guaranteed to be consecutive.
type Chapter struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID       int64     `json:"novel_id" gorm:"not null;uniqueIndex:idx_novel_chapter_number"`
	ChapterNumber int       `json:"chapter_number" gorm:"not null;uniqueIndex:idx_novel_chapter_number"`
	Title         string    `json:"title" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text"`
	Views         int64     `json:"views" gorm:"not null;default:0"`
	UploadedAt    time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
