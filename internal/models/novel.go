package models

import "time"

type Novel struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string    `json:"title" gorm:"not null"`
	Author           string    `json:"author" gorm:"not null"` // pen name shown to readers
	UploadBy         string    `json:"upload_by" gorm:"type:uuid;not null;index"`
	Views            int64     `json:"views" gorm:"not null;default:0"`
	LeadingCharacter string    `json:"leading_character" gorm:"type:text"` // "male" or "female"
	Story            string    `json:"story" gorm:"type:text"`
	CoverURL         *string   `json:"cover_url,omitempty"`
	Genres           GenreList `json:"genres" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`

	// association
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
}

func (Novel) TableName() string {
	return "novels"
}
