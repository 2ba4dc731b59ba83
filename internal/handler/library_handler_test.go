package handler

import (
	"testing"
	"time"

	"novelhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryResponse(t *testing.T) {
	chapter := 7
	readAt := time.Now()
	entry := models.LibraryEntry{
		ID:              1,
		NovelID:         42,
		LastReadChapter: &chapter,
		LastReadAt:      &readAt,
		AddedAt:         time.Now(),
		Novel:           &models.Novel{ID: 42, Title: "Paper Lanterns"},
	}

	resp := libraryResponse(entry)

	require.NotNil(t, resp.Novel)
	assert.Equal(t, "Paper Lanterns", resp.Novel.Title)
	assert.Equal(t, int64(42), resp.NovelID)
	assert.Equal(t, &chapter, resp.LastReadChapter)
}

func TestLibraryResponse_WithoutPreload(t *testing.T) {
	resp := libraryResponse(models.LibraryEntry{ID: 2, NovelID: 7})

	assert.Nil(t, resp.Novel)
	assert.Equal(t, int64(7), resp.NovelID)
}
