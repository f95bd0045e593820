package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/permissions"
	"github.com/labrinth/backend/internal/repository"
)

type UserHandler struct {
	userRepo  *repository.UserRepository
	postRepo  *repository.PostRepository
	replyRepo *repository.ReplyRepository
}

func NewUserHandler(userRepo *repository.UserRepository, postRepo *repository.PostRepository, replyRepo *repository.ReplyRepository) *UserHandler {
	return &UserHandler{
		userRepo:  userRepo,
		postRepo:  postRepo,
		replyRepo: replyRepo,
	}
}

// GetActivity returns a user's posts and replies merged newest-first.
// Authorship is resolved through the display name, so the history shows
// whatever currently carries that name.
func (h *UserHandler) GetActivity(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	posts, err := h.postRepo.ListByAuthor(user.DisplayName)
	if err != nil {
		HandleError(c, err)
		return
	}
	replies, err := h.replyRepo.ListByAuthor(user.DisplayName)
	if err != nil {
		HandleError(c, err)
		return
	}

	activity := []models.ActivityItem{}
	for i := range posts {
		activity = append(activity, models.ActivityItem{
			ID:           posts[i].ID,
			Type:         "post",
			Title:        posts[i].Title,
			Date:         posts[i].CreatedAt,
			Category:     posts[i].CategoryName,
			PostID:       posts[i].ID,
			CategorySlug: posts[i].CategorySlug,
		})
	}
	for i := range replies {
		item := models.ActivityItem{
			ID:      replies[i].ID,
			Type:    "reply",
			Content: replies[i].Content,
			Date:    replies[i].CreatedAt,
			PostID:  replies[i].PostID,
		}
		if post, err := h.postRepo.GetByID(replies[i].PostID); err == nil {
			item.PostTitle = post.Title
			item.CategorySlug = post.CategorySlug
		} else {
			item.PostTitle = "Unknown Post"
		}
		activity = append(activity, item)
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})

	c.JSON(http.StatusOK, activity)
}

// ListUsers returns every user, passwords stripped. Restricted to admins
// and moderators; the caller states its identity via the auth_user_id query
// parameter.
func (h *UserHandler) ListUsers(c *gin.Context) {
	authUserID := c.Query("auth_user_id")
	if authUserID == "" {
		ErrorResponse(c, http.StatusUnauthorized, "Authorization required")
		return
	}

	authUser, err := h.userRepo.GetByID(authUserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if !permissions.IsAdmin(authUser) && !permissions.IsModerator(authUser) {
		HandleError(c, apperrors.ErrPermissionDenied)
		return
	}

	users, err := h.userRepo.List()
	if err != nil {
		HandleError(c, err)
		return
	}

	safeUsers := make([]models.User, 0, len(users))
	for i := range users {
		safeUsers = append(safeUsers, users[i].Safe())
	}

	c.JSON(http.StatusOK, safeUsers)
}
