package models

import "time"

// LibraryEntry records a user's membership in a novel plus their reading
// position. The reading tracker only ever touches LastReadChapter and
// LastReadAt; membership is created and removed by explicit library actions.
type LibraryEntry struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string     `gorm:"type:uuid;not null;uniqueIndex:idx_user_novel" json:"user_id"`
	NovelID         int64      `gorm:"not null;uniqueIndex:idx_user_novel" json:"novel_id"`
	LastReadChapter *int       `json:"last_read_chapter,omitempty"`
	LastReadAt      *time.Time `json:"last_read_at,omitempty"`
	AddedAt         time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations, dropped with their owner so a novel delete cannot be
	// blocked by readers who shelved it
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Novel *Novel `gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE" json:"novel,omitempty"`
}

func (LibraryEntry) TableName() string {
	return "user_library"
}
