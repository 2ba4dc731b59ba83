package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"novelhub/internal/dto"
	"novelhub/internal/middleware"
	"novelhub/internal/models"
	"novelhub/internal/service"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	library service.LibraryService
}

func NewLibraryHandler(library service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// RegisterRoutes mounts the library endpoints. All of them require a
// signed-in user.
func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", requireAuth, h.List)
	rg.POST("", requireAuth, h.Add)
	rg.DELETE("/:novel_id", requireAuth, h.Remove)
}

func (h *LibraryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.library.List(ctx, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load library"})
		return
	}

	items := make([]dto.LibraryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, libraryResponse(entry))
	}

	c.JSON(http.StatusOK, dto.LibraryListResponse{Items: items, Total: len(items)})
}

func (h *LibraryHandler) Add(c *gin.Context) {
	var req dto.AddToLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.library.Add(ctx, middleware.UserID(c), req.NovelID); err != nil {
		switch {
		case errors.Is(err, service.ErrNovelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "novel not found"})
		case errors.Is(err, service.ErrAlreadyInLibrary):
			c.JSON(http.StatusConflict, gin.H{"error": "novel already in library"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to library"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "added to library"})
}

func (h *LibraryHandler) Remove(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.library.Remove(ctx, middleware.UserID(c), novelID); err != nil {
		if errors.Is(err, service.ErrNotInLibrary) {
			c.JSON(http.StatusNotFound, gin.H{"error": "novel not in library"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from library"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from library"})
}

func libraryResponse(entry models.LibraryEntry) dto.LibraryResponse {
	resp := dto.LibraryResponse{
		ID:              entry.ID,
		NovelID:         entry.NovelID,
		LastReadChapter: entry.LastReadChapter,
		LastReadAt:      entry.LastReadAt,
		AddedAt:         entry.AddedAt,
	}
	// Novel is only populated on preloaded rows
	if entry.Novel != nil {
		novel := dto.FromNovelModel(*entry.Novel)
		resp.Novel = &novel
	}
	return resp
}
