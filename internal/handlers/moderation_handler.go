package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/moderation"
)

type ModerationHandler struct {
	service *moderation.Service
}

func NewModerationHandler(service *moderation.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// BanUser bans the target user. Duration is in days; zero or absent means
// the ban is permanent.
func (h *ModerationHandler) BanUser(c *gin.Context) {
	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Moderator ID and target user ID are required")
		return
	}

	user, err := h.service.Ban(req.ModeratorID, req.TargetUserID, req.Reason, req.Duration)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User banned successfully",
		"user":    moderatedProjection(user),
	})
}

// UnbanUser lifts the target user's ban
func (h *ModerationHandler) UnbanUser(c *gin.Context) {
	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Moderator ID and target user ID are required")
		return
	}

	user, err := h.service.Unban(req.ModeratorID, req.TargetUserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User unbanned successfully",
		"user":    moderatedProjection(user),
	})
}

// MuteUser mutes the target user. Duration is in hours and is mandatory:
// a mute cannot be permanent.
func (h *ModerationHandler) MuteUser(c *gin.Context) {
	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Moderator ID and target user ID are required")
		return
	}

	user, err := h.service.Mute(req.ModeratorID, req.TargetUserID, req.Reason, req.Duration)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User muted successfully",
		"user":    moderatedProjection(user),
	})
}

// UnmuteUser lifts the target user's mute
func (h *ModerationHandler) UnmuteUser(c *gin.Context) {
	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Moderator ID and target user ID are required")
		return
	}

	user, err := h.service.Unmute(req.ModeratorID, req.TargetUserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User unmuted successfully",
		"user":    moderatedProjection(user),
	})
}

func moderatedProjection(user *models.User) models.ModeratedUser {
	return models.ModeratedUser{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		IsBanned:    user.IsBanned,
		BanEndDate:  user.BanEndDate,
		IsMuted:     user.IsMuted,
		MuteEndDate: user.MuteEndDate,
	}
}
