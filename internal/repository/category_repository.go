package repository

import (
	"fmt"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/store"
)

type CategoryRepository struct {
	store *store.Store
}

func NewCategoryRepository(s *store.Store) *CategoryRepository {
	return &CategoryRepository{store: s}
}

// List returns all categories with post_count and reply_count recomputed
// from the live posts and replies documents. The stored counters are only a
// cache maintained by the mutation paths; recounting on read means a drifted
// cache can never be served.
func (r *CategoryRepository) List() ([]models.Category, error) {
	categories, err := r.store.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	posts, err := r.store.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	replies, err := r.store.Replies()
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	for i := range categories {
		categories[i].PostCount, categories[i].ReplyCount = countForCategory(categories[i].ID, posts, replies)
	}
	return categories, nil
}

// GetBySlug returns one category by its URL slug, counters recomputed.
func (r *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	categories, err := r.store.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for i := range categories {
		if categories[i].Slug == slug {
			c := categories[i]
			posts, err := r.store.Posts()
			if err != nil {
				return nil, fmt.Errorf("failed to load posts: %w", err)
			}
			replies, err := r.store.Replies()
			if err != nil {
				return nil, fmt.Errorf("failed to load replies: %w", err)
			}
			c.PostCount, c.ReplyCount = countForCategory(c.ID, posts, replies)
			return &c, nil
		}
	}
	return nil, apperrors.ErrCategoryNotFound
}

// GetByID returns the raw stored category record.
func (r *CategoryRepository) GetByID(id string) (*models.Category, error) {
	categories, err := r.store.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrCategoryNotFound
}

func countForCategory(categoryID string, posts []models.Post, replies []models.Reply) (postCount, replyCount int) {
	postIDs := make(map[string]struct{})
	for i := range posts {
		if posts[i].CategoryID == categoryID {
			postCount++
			postIDs[posts[i].ID] = struct{}{}
		}
	}
	for i := range replies {
		if _, ok := postIDs[replies[i].PostID]; ok {
			replyCount++
		}
	}
	return postCount, replyCount
}
