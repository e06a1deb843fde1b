package handlers

import (
	"context"
	"errors"
	"net/http"

	"student_admin_backend/middleware"
	"student_admin_backend/models"
	"student_admin_backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	GetByID(ctx context.Context, id string) (models.Admin, error)
}

type TokenIssuer interface {
	GenerateTokens(ctx context.Context, adminID string) (models.TokenPair, error)
	ValidateRefreshToken(ctx context.Context, refreshToken string) (string, error)
	InvalidateRefreshToken(ctx context.Context, refreshToken string) error
}

type AuthHandler struct {
	admins AdminStore
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthHandler(admins AdminStore, tokens TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{admins: admins, tokens: tokens, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.admins.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !middleware.VerifyPassword(admin.PasswordHash, req.Password)) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to verify credentials", err)
		return
	}

	tokens, err := h.tokens.GenerateTokens(c.Request.Context(), admin.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to generate tokens", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    models.LoginResponse{TokenPair: tokens, Admin: admin},
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	adminID, err := h.tokens.ValidateRefreshToken(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, middleware.ErrInvalidRefreshToken) {
		fail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to validate refresh token", err)
		return
	}

	tokens, err := h.tokens.GenerateTokens(c.Request.Context(), adminID)
	if err != nil {
		internalError(c, h.logger, "Failed to generate tokens", err)
		return
	}

	if err := h.tokens.InvalidateRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		h.logger.Warn("error invalidating old refresh token", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": tokens})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "No refresh token provided")
		return
	}

	if err := h.tokens.InvalidateRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		internalError(c, h.logger, "Failed to logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	admin, err := h.admins.GetByID(c.Request.Context(), c.GetString(middleware.ContextAdminID))
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "Account no longer exists")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to fetch account", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
}
