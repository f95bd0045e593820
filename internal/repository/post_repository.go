package repository

import (
	"fmt"
	"sort"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/store"
)

type PostRepository struct {
	store *store.Store
}

func NewPostRepository(s *store.Store) *PostRepository {
	return &PostRepository{store: s}
}

// Create appends the post and increments the owning category's post_count in
// one batched write. The category's name and slug are copied onto the post at
// this point; they never track later category renames.
func (r *PostRepository) Create(post *models.Post) error {
	return r.store.Update(func(tx *store.Tx) error {
		categories, err := tx.Categories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		categoryIndex := -1
		for i := range categories {
			if categories[i].ID == post.CategoryID {
				categoryIndex = i
				break
			}
		}
		if categoryIndex == -1 {
			return apperrors.ErrCategoryNotFound
		}

		post.CategoryName = categories[categoryIndex].Name
		post.CategorySlug = categories[categoryIndex].Slug
		post.ReplyCount = 0

		posts, err := tx.Posts()
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		categories[categoryIndex].PostCount++
		tx.SavePosts(append(posts, *post))
		tx.SaveCategories(categories)
		return nil
	})
}

// GetByID returns the raw stored post record.
func (r *PostRepository) GetByID(id string) (*models.Post, error) {
	posts, err := r.store.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	for i := range posts {
		if posts[i].ID == id {
			p := posts[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrPostNotFound
}

// GetDetail assembles the post page view: the post, its replies sorted oldest
// first, and a reply count recounted from the live replies document.
func (r *PostRepository) GetDetail(id string) (*models.PostDetail, error) {
	post, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	replies, err := r.store.Replies()
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	postReplies := []models.Reply{}
	for i := range replies {
		if replies[i].PostID == id {
			postReplies = append(postReplies, replies[i])
		}
	}
	sort.Slice(postReplies, func(i, j int) bool {
		return postReplies[i].CreatedAt.Before(postReplies[j].CreatedAt)
	})

	return &models.PostDetail{
		PostListItem: models.PostListItem{
			ID:           post.ID,
			Title:        post.Title,
			AuthorName:   post.AuthorName,
			CreatedAt:    post.CreatedAt,
			ReplyCount:   len(postReplies),
			CategorySlug: post.CategorySlug,
			CategoryName: post.CategoryName,
			IsModerated:  post.IsModerated,
		},
		Content: post.Content,
		Replies: postReplies,
		Images:  post.Images,
	}, nil
}

// ListByCategory returns the category page projection of every post in the
// category, reply counts recounted live.
func (r *PostRepository) ListByCategory(categoryID string) ([]models.PostListItem, error) {
	posts, err := r.store.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	replies, err := r.store.Replies()
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	replyCounts := make(map[string]int)
	for i := range replies {
		replyCounts[replies[i].PostID]++
	}

	items := []models.PostListItem{}
	for i := range posts {
		if posts[i].CategoryID != categoryID {
			continue
		}
		items = append(items, models.PostListItem{
			ID:           posts[i].ID,
			Title:        posts[i].Title,
			AuthorName:   posts[i].AuthorName,
			CreatedAt:    posts[i].CreatedAt,
			ReplyCount:   replyCounts[posts[i].ID],
			CategorySlug: posts[i].CategorySlug,
			CategoryName: posts[i].CategoryName,
			IsModerated:  posts[i].IsModerated,
		})
	}
	return items, nil
}

// ListModerated returns all moderated posts, newest first.
func (r *PostRepository) ListModerated() ([]models.Post, error) {
	posts, err := r.store.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	moderated := []models.Post{}
	for i := range posts {
		if posts[i].IsModerated {
			moderated = append(moderated, posts[i])
		}
	}
	sort.Slice(moderated, func(i, j int) bool {
		return moderated[i].CreatedAt.After(moderated[j].CreatedAt)
	})
	return moderated, nil
}

// ListByAuthor returns the posts whose author_name matches the given display
// name. Authorship is a display-name match, so a renamed user loses their
// history here.
func (r *PostRepository) ListByAuthor(displayName string) ([]models.Post, error) {
	posts, err := r.store.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	authored := []models.Post{}
	for i := range posts {
		if posts[i].AuthorName == displayName {
			authored = append(authored, posts[i])
		}
	}
	return authored, nil
}

// Delete removes the post, cascades to its replies, and decrements the owning
// category's post_count by one and reply_count by the number of replies
// removed, all in one batched write. Deleting an id that is already gone
// returns ErrPostNotFound before anything is touched, so a repeated delete
// cannot corrupt the counters.
func (r *PostRepository) Delete(id string) error {
	return r.store.Update(func(tx *store.Tx) error {
		posts, err := tx.Posts()
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}
		postIndex := -1
		for i := range posts {
			if posts[i].ID == id {
				postIndex = i
				break
			}
		}
		if postIndex == -1 {
			return apperrors.ErrPostNotFound
		}
		post := posts[postIndex]

		replies, err := tx.Replies()
		if err != nil {
			return fmt.Errorf("failed to load replies: %w", err)
		}
		kept := []models.Reply{}
		removed := 0
		for i := range replies {
			if replies[i].PostID == id {
				removed++
				continue
			}
			kept = append(kept, replies[i])
		}

		tx.SavePosts(append(posts[:postIndex], posts[postIndex+1:]...))
		if removed > 0 {
			tx.SaveReplies(kept)
		}

		categories, err := tx.Categories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		for i := range categories {
			if categories[i].ID == post.CategoryID {
				categories[i].PostCount = max(0, categories[i].PostCount-1)
				categories[i].ReplyCount = max(0, categories[i].ReplyCount-removed)
				tx.SaveCategories(categories)
				break
			}
		}
		return nil
	})
}
