package handlers

import (
	"fmt"
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

type PostHandler struct {
	postRepo *repository.PostRepository
	userRepo *repository.UserRepository
	redis    *cache.RedisClient
}

func NewPostHandler(postRepo *repository.PostRepository, userRepo *repository.UserRepository, redis *cache.RedisClient) *PostHandler {
	return &PostHandler{
		postRepo: postRepo,
		userRepo: userRepo,
		redis:    redis,
	}
}

// resolveAuthor loads the claimed author and refuses banned or muted
// accounts. An expired ban or mute is cleared first, so a stale record on
// disk never blocks a user whose sanction has already lapsed.
func (h *PostHandler) resolveAuthor(authorID string) (*models.User, error) {
	author, err := h.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	moderation.ResolveExpired(author, time.Now())
	if author.IsBanned {
		return nil, apperrors.ErrBanned
	}
	if author.IsMuted {
		return nil, apperrors.ErrMuted
	}
	return author, nil
}

// CreatePost creates a post in a regular category
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	author, err := h.resolveAuthor(req.AuthorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !permissions.CanCreate(author) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	post := buildPost(&req, author, false)
	if err := h.postRepo.Create(post); err != nil {
		HandleError(c, err)
		return
	}

	publishEvent(h.redis, models.EventPostNew, post)
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

// CreateModeratedPost creates a post in the moderated section; only admins
// and moderators may do so
func (h *PostHandler) CreateModeratedPost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	author, err := h.resolveAuthor(req.AuthorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !permissions.CanCreateModeratedPost(author) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	post := buildPost(&req, author, true)
	if err := h.postRepo.Create(post); err != nil {
		HandleError(c, err)
		return
	}

	publishEvent(h.redis, models.EventPostNew, post)
	c.JSON(http.StatusCreated, gin.H{"message": "Moderated post created successfully", "post": post})
}

// GetPost returns the post detail view with its replies
func (h *PostHandler) GetPost(c *gin.Context) {
	detail, err := h.postRepo.GetDetail(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListModeratedPosts returns all moderated posts, newest first
func (h *PostHandler) ListModeratedPosts(c *gin.Context) {
	posts, err := h.postRepo.ListModerated()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost deletes a post and cascades to its replies. The acting user is
// stated in the body and checked against the permission engine.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")

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

	post, err := h.postRepo.GetByID(postID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if !permissions.CanDeletePost(user, post) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	if err := h.postRepo.Delete(postID); err != nil {
		HandleError(c, err)
		return
	}

	publishEvent(h.redis, models.EventPostDeleted, gin.H{"id": postID})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// buildPost assembles a new post record. Image links are appended to the
// content as markdown, matching how existing posts carry them.
func buildPost(req *models.CreatePostRequest, author *models.User, isModerated bool) *models.Post {
	content := req.Content
	for _, url := range req.Images {
		content += fmt.Sprintf("\n\n![Image](%s)", url)
	}

	return &models.Post{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     content,
		AuthorName:  author.DisplayName,
		CreatedAt:   time.Now(),
		CategoryID:  req.CategoryID,
		IsModerated: isModerated,
		Images:      req.Images,
	}
}
