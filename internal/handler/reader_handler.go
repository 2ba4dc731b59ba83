package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"novelhub/internal/dto"
	"novelhub/internal/middleware"
	"novelhub/internal/reader"

	"github.com/gin-gonic/gin"
)

// ReaderHandler serves the reading surface: opening a chapter creates a
// mount, scroll events feed its completion detector, leaving the page
// releases it.
type ReaderHandler struct {
	resolver *reader.SessionResolver
	mounts   *reader.MountRegistry
}

func NewReaderHandler(resolver *reader.SessionResolver, mounts *reader.MountRegistry) *ReaderHandler {
	return &ReaderHandler{resolver: resolver, mounts: mounts}
}

// RegisterRoutes mounts the reading surface on the API root: chapter reads
// live under the novel, mount lifecycle under /reader.
func (h *ReaderHandler) RegisterRoutes(api *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	api.GET("/novels/:novel_id/chapters/:chapter_id", optionalAuth, h.ReadChapter)
	api.POST("/reader/mounts/:mount_id/scroll", h.Scroll)
	api.DELETE("/reader/mounts/:mount_id", h.CloseMount)
}

// ReadChapter opens a reading session on a chapter: full content, adjacent
// chapters and a fresh mount id. Opening supersedes the reader's previous
// mount, so stale scroll events from an abandoned page die on mount lookup.
func (h *ReaderHandler) ReadChapter(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}
	chapterID, err := strconv.ParseInt(c.Param("chapter_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID := middleware.UserID(c)

	resolved, err := h.resolver.Resolve(ctx, novelID, chapterID, userID)
	if err != nil {
		if errors.Is(err, reader.ErrNovelNotFound) || errors.Is(err, reader.ErrChapterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chapter"})
		return
	}

	mount := h.mounts.Open(readerKey(c, userID), userID, novelID, chapterID, resolved.Current.ChapterNumber)

	resp := dto.ChapterReadResponse{
		MountID: mount.ID,
		Novel:   dto.FromNovelModel(*resolved.Novel),
		Chapter: dto.FromChapterModelWithContent(*resolved.Current),
	}
	if resolved.Previous != nil {
		prev := dto.FromChapterModel(*resolved.Previous)
		resp.Previous = &prev
	}
	if resolved.Next != nil {
		next := dto.FromChapterModel(*resolved.Next)
		resp.Next = &next
	}

	c.JSON(http.StatusOK, resp)
}

// Scroll feeds one scroll sample to the mount. Samples for a superseded,
// released or swept mount are acknowledged and dropped; the client cannot
// tell and does not need to.
func (h *ReaderHandler) Scroll(c *gin.Context) {
	var req dto.ScrollEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completed, err := h.mounts.Observe(c.Param("mount_id"), req.ScrollTop, req.ViewportHeight, req.ContentHeight)
	if err != nil {
		if errors.Is(err, reader.ErrMountNotFound) {
			c.JSON(http.StatusOK, dto.ScrollEventResponse{Completed: false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record scroll"})
		return
	}

	c.JSON(http.StatusOK, dto.ScrollEventResponse{Completed: completed})
}

// CloseMount releases a mount on page unmount. Always succeeds.
func (h *ReaderHandler) CloseMount(c *gin.Context) {
	h.mounts.Release(c.Param("mount_id"))
	c.Status(http.StatusNoContent)
}

// readerKey identifies a reader for the one-active-mount rule. Signed-in
// readers are keyed by user id so a login on a second device supersedes the
// first; anonymous readers fall back to client IP.
func readerKey(c *gin.Context, userID string) string {
	if userID != "" {
		return userID
	}
	return "anon:" + c.ClientIP()
}
