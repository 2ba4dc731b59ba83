package handler

import (
	"errors"
	"net/http"

	"novelhub/internal/dto"
	"novelhub/internal/models"
	"novelhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    service.AuthService
	accessTokenTTL int64 // seconds, echoed in token responses
}

func NewAuthHandler(authService service.AuthService, accessTokenTTLSeconds int64) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accessTokenTTL: accessTokenTTLSeconds,
	}
}

// RegisterRoutes mounts the auth endpoints. loginLimit throttles credential
// guessing on the login route only.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.POST("/login", loginLimit, h.Login)
	rg.POST("/refresh", h.RefreshToken)
	rg.POST("/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email, req.Age, req.Genres)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameInUse), errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "account creation failed"})
		case errors.Is(err, models.ErrTooManyGenres), errors.Is(err, models.ErrUnknownGenre):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Message:  "account created",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		ExpiresIn:    h.accessTokenTTL,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAccessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": newAccessToken,
		"token_type":   "Bearer",
		"expires_in":   h.accessTokenTTL,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// always report success to avoid token fishing
	_ = h.authService.Logout(req.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
