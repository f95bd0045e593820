package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labrinth/backend/internal/repository"
)

type CategoryHandler struct {
	categoryRepo *repository.CategoryRepository
	postRepo     *repository.PostRepository
}

func NewCategoryHandler(categoryRepo *repository.CategoryRepository, postRepo *repository.PostRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
	}
}

// ListCategories returns every category with live post and reply counts
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category by slug
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListCategoryPosts returns the posts of a category, resolved by slug
func (h *CategoryHandler) ListCategoryPosts(c *gin.Context) {
	category, err := h.categoryRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}

	posts, err := h.postRepo.ListByCategory(category.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
