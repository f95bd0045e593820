package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labrinth/backend/internal/auth"
	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/moderation"
	"github.com/labrinth/backend/internal/repository"
)

type AuthHandler struct {
	userRepo   *repository.UserRepository
	jwtService *auth.JWTService
}

func NewAuthHandler(userRepo *repository.UserRepository, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		// Display name defaults to the username; the profile page can
		// change it later.
		DisplayName: req.Username,
		Password:    req.Password,
		CreatedAt:   time.Now(),
		Role:        models.RoleUser,
	}
	if err := user.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.Create(user); err != nil {
		HandleError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, models.LoginResponse{
		Token: token,
		User:  user.Safe(),
	})
}

// Login handles user login. An active ban does not block login: the safe
// user record carries the ban state and the client decides how to present
// it. An expired ban or mute is cleared here, server-side, and the
// corrected record is persisted so the source of truth never lags behind.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userRepo.GetByUsername(req.Username)
	if err != nil {
		HandleError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if user.Password != req.Password {
		HandleError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if moderation.ResolveExpired(user, time.Now()) {
		if err := h.userRepo.Save(user); err != nil {
			log.Printf("Failed to persist expired moderation state for %s: %v", user.ID, err)
		}
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user.Safe(),
	})
}

// GetMe returns the current session's user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Safe())
}

// UpdatePassword verifies the current password and sets a new one
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userRepo.GetByID(req.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if user.Password != req.CurrentPassword {
		ErrorResponse(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	if err := h.userRepo.UpdatePassword(req.UserID, req.NewPassword); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// DeleteAccount removes the user's account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req models.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.Delete(req.UserID); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
