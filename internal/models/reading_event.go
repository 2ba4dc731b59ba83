package models

import "time"

// ReadingEvent is the per-day, per-user count of chapters completed. Profile
// statistics read it back as a 7-day series.
type ReadingEvent struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_date" json:"user_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date" json:"date"`
	ChaptersRead int       `gorm:"not null;default:0" json:"chapters_read"`
}

// Day returns the event date in YYYY-MM-DD form. The driver scans a date
// column back as a midnight time.Time; formatting here keeps whatever clock
// time and zone it attached out of day-keyed lookups.
func (e ReadingEvent) Day() string {
	return e.Date.Format("2006-01-02")
}

// DateOf truncates a timestamp to its calendar day in UTC, the form the
// date column stores.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (ReadingEvent) TableName() string {
	return "reading_events"
}
