package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadingEventDay(t *testing.T) {
	// the postgres driver hands date columns back as midnight UTC
	scanned := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	event := ReadingEvent{UserID: "user1", Date: scanned, ChaptersRead: 3}

	assert.Equal(t, "2026-08-26", event.Day())
}

func TestDateOf(t *testing.T) {
	local := time.Date(2026, 8, 26, 23, 45, 12, 999, time.FixedZone("JST", 9*3600))
	got := DateOf(local)

	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, local.Format("2006-01-02"), got.Format("2006-01-02"))
}
