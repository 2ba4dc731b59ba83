package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"novelhub/internal/dto"
	"novelhub/internal/middleware"
	"novelhub/internal/models"
	"novelhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", requireAuth, h.Get)
	rg.PUT("", requireAuth, h.Update)
	rg.GET("/stats", requireAuth, h.Stats)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.profiles.Get(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, dto.FromUserModel(user))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID := middleware.UserID(c)

	// Absent fields keep their stored values.
	current, err := h.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	update := service.ProfileUpdate{
		Username: current.Username,
		Age:      current.Age,
		Genres:   current.Genres,
	}
	if req.Username != nil {
		update.Username = *req.Username
	}
	if req.Age != nil {
		update.Age = req.Age
	}
	if req.Genres != nil {
		update.Genres = *req.Genres
	}

	user, err := h.profiles.Update(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "username already in use"})
		case errors.Is(err, models.ErrTooManyGenres), errors.Is(err, models.ErrUnknownGenre):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromUserModel(user))
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.profiles.Stats(ctx, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, dto.FromStats(stats))
}
