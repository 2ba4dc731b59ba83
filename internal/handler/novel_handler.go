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
	"novelhub/internal/reader"
	"novelhub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NovelHandler struct {
	novels   service.NovelService
	library  service.LibraryService
	progress *reader.ProgressStore
	counter  *reader.ViewCounter
}

func NewNovelHandler(novels service.NovelService, library service.LibraryService, progress *reader.ProgressStore, counter *reader.ViewCounter) *NovelHandler {
	return &NovelHandler{
		novels:   novels,
		library:  library,
		progress: progress,
		counter:  counter,
	}
}

// RegisterRoutes mounts the novel endpoints. Browsing is public; the detail
// page resolves library state when a token is presented; authoring requires
// one.
func (h *NovelHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("", h.Explore)
	rg.GET("/rankings", h.Rankings)
	rg.GET("/mine", requireAuth, h.Mine)
	rg.GET("/:novel_id", optionalAuth, h.Get)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:novel_id", requireAuth, h.Update)
	rg.DELETE("/:novel_id", requireAuth, h.Delete)

	rg.GET("/:novel_id/chapters", h.ListChapters)
	rg.POST("/:novel_id/chapters", requireAuth, h.AddChapter)
	rg.PUT("/:novel_id/chapters/:chapter_id", requireAuth, h.UpdateChapter)
	rg.DELETE("/:novel_id/chapters/:chapter_id", requireAuth, h.DeleteChapter)
}

func (h *NovelHandler) Explore(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.novels.Explore(ctx, c.Query("genre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load novels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": novelResponses(list)})
}

func (h *NovelHandler) Rankings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.novels.Rankings(ctx, c.Query("genre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rankings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": novelResponses(list)})
}

func (h *NovelHandler) Mine(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.novels.Mine(ctx, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load novels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": novelResponses(list)})
}

// Get serves the novel detail page: metadata, the ordered chapter list and,
// for signed-in readers, library membership and their last-read position.
// Loading the page counts as a novel view; the bump happens off the request
// path.
func (h *NovelHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	novel, err := h.novels.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNovelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "novel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load novel"})
		return
	}

	chapters, err := h.novels.Chapters(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chapters"})
		return
	}

	resp := dto.NovelDetailResponse{
		Novel:    dto.FromNovelModel(*novel),
		Chapters: chapterResponses(chapters),
	}

	if userID := middleware.UserID(c); userID != "" {
		if inLibrary, err := h.library.Contains(ctx, userID, id); err == nil {
			resp.InLibrary = inLibrary
		}
		if last, err := h.progress.LastRead(ctx, userID, id); err == nil && last != nil {
			resp.LastRead = &dto.LastReadResponse{
				ChapterNumber: last.ChapterNumber,
				ReadAt:        last.ReadAt,
			}
		}
	}

	h.counter.NovelViewed(id)

	c.JSON(http.StatusOK, resp)
}

func (h *NovelHandler) Create(c *gin.Context) {
	var in dto.CreateNovelDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	novel := in.ToModel()
	if err := h.novels.Create(ctx, middleware.UserID(c), &novel); err != nil {
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromNovelModel(novel))
}

func (h *NovelHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}

	var in dto.UpdateNovelDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	novel := in.ToModel()
	if err := h.novels.Update(ctx, middleware.UserID(c), id, &novel); err != nil {
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "novel updated"})
}

func (h *NovelHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.novels.Delete(ctx, middleware.UserID(c), id); err != nil {
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "novel deleted"})
}

func (h *NovelHandler) ListChapters(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	chapters, err := h.novels.Chapters(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chapters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chapterResponses(chapters)})
}

func (h *NovelHandler) AddChapter(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid novel id"})
		return
	}

	var in dto.CreateChapterDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	chapter := in.ToModel(novelID)
	if err := h.novels.AddChapter(ctx, middleware.UserID(c), &chapter); err != nil {
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromChapterModel(chapter))
}

func (h *NovelHandler) UpdateChapter(c *gin.Context) {
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

	var in dto.UpdateChapterDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	chapter := models.Chapter{
		ID:            chapterID,
		NovelID:       novelID,
		ChapterNumber: in.ChapterNumber,
		Title:         in.Title,
		Content:       in.Content,
	}
	if err := h.novels.UpdateChapter(ctx, middleware.UserID(c), &chapter); err != nil {
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "chapter updated"})
}

func (h *NovelHandler) DeleteChapter(c *gin.Context) {
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

	if err := h.novels.DeleteChapter(ctx, middleware.UserID(c), novelID, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		h.writeNovelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted"})
}

func (h *NovelHandler) writeNovelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNovelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "novel not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this novel"})
	case errors.Is(err, models.ErrTooManyGenres), errors.Is(err, models.ErrUnknownGenre):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func novelResponses(list []models.Novel) []dto.NovelResponse {
	resp := make([]dto.NovelResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, dto.FromNovelModel(n))
	}
	return resp
}

func chapterResponses(list []models.Chapter) []dto.ChapterResponse {
	resp := make([]dto.ChapterResponse, 0, len(list))
	for _, ch := range list {
		resp = append(resp, dto.FromChapterModel(ch))
	}
	return resp
}
