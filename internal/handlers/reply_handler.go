package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labrinth/backend/internal/cache"
	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/moderation"
	"github.com/labrinth/backend/internal/permissions"
	"github.com/labrinth/backend/internal/repository"
)

type ReplyHandler struct {
	replyRepo *repository.ReplyRepository
	postRepo  *repository.PostRepository
	userRepo  *repository.UserRepository
	redis     *cache.RedisClient
}

func NewReplyHandler(replyRepo *repository.ReplyRepository, postRepo *repository.PostRepository, userRepo *repository.UserRepository, redis *cache.RedisClient) *ReplyHandler {
	return &ReplyHandler{
		replyRepo: replyRepo,
		postRepo:  postRepo,
		userRepo:  userRepo,
		redis:     redis,
	}
}

// CreateReply adds a reply to a post
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	var req models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	author, err := h.userRepo.GetByID(req.AuthorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	moderation.ResolveExpired(author, time.Now())
	if author.IsBanned {
		HandleError(c, apperrors.ErrBanned)
		return
	}
	if author.IsMuted {
		HandleError(c, apperrors.ErrMuted)
		return
	}

	post, err := h.postRepo.GetByID(req.PostID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !permissions.CanReply(author, post) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	reply := &models.Reply{
		ID:         uuid.NewString(),
		PostID:     req.PostID,
		AuthorName: author.DisplayName,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}
	if err := h.replyRepo.Create(reply); err != nil {
		HandleError(c, err)
		return
	}

	publishEvent(h.redis, models.EventReplyNew, reply)
	c.JSON(http.StatusCreated, gin.H{"message": "Reply posted successfully", "reply": reply})
}

// GetReply returns one reply by id
func (h *ReplyHandler) GetReply(c *gin.Context) {
	reply, err := h.replyRepo.GetByID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// DeleteReply deletes a reply and fixes up the counters
func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	replyID := c.Param("id")

	var body struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "User ID is required")
		return
	}

	user, err := h.userRepo.GetByID(body.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	reply, err := h.replyRepo.GetByID(replyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if !permissions.CanDeleteReply(user, reply) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	if err := h.replyRepo.Delete(replyID); err != nil {
		HandleError(c, err)
		return
	}

	publishEvent(h.redis, models.EventReplyDeleted, gin.H{"id": replyID, "post_id": reply.PostID})
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
