package repository

import (
	"fmt"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/store"
)

type ReplyRepository struct {
	store *store.Store
}

func NewReplyRepository(s *store.Store) *ReplyRepository {
	return &ReplyRepository{store: s}
}

// Create appends the reply and bumps both counter caches (the post's
// reply_count and the owning category's reply_count) in one batched write.
func (r *ReplyRepository) Create(reply *models.Reply) error {
	return r.store.Update(func(tx *store.Tx) error {
		posts, err := tx.Posts()
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}
		postIndex := -1
		for i := range posts {
			if posts[i].ID == reply.PostID {
				postIndex = i
				break
			}
		}
		if postIndex == -1 {
			return apperrors.ErrPostNotFound
		}

		replies, err := tx.Replies()
		if err != nil {
			return fmt.Errorf("failed to load replies: %w", err)
		}

		posts[postIndex].ReplyCount++
		tx.SaveReplies(append(replies, *reply))
		tx.SavePosts(posts)

		categories, err := tx.Categories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		for i := range categories {
			if categories[i].ID == posts[postIndex].CategoryID {
				categories[i].ReplyCount++
				tx.SaveCategories(categories)
				break
			}
		}
		return nil
	})
}

// GetByID retrieves a reply by id.
func (r *ReplyRepository) GetByID(id string) (*models.Reply, error) {
	replies, err := r.store.Replies()
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}
	for i := range replies {
		if replies[i].ID == id {
			rep := replies[i]
			return &rep, nil
		}
	}
	return nil, apperrors.ErrReplyNotFound
}

// ListByAuthor returns the replies whose author_name matches the display
// name, with the same rename caveat as posts.
func (r *ReplyRepository) ListByAuthor(displayName string) ([]models.Reply, error) {
	replies, err := r.store.Replies()
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	authored := []models.Reply{}
	for i := range replies {
		if replies[i].AuthorName == displayName {
			authored = append(authored, replies[i])
		}
	}
	return authored, nil
}

// Delete removes the reply and decrements the post and category reply
// counters, clamped at zero, in one batched write.
func (r *ReplyRepository) Delete(id string) error {
	return r.store.Update(func(tx *store.Tx) error {
		replies, err := tx.Replies()
		if err != nil {
			return fmt.Errorf("failed to load replies: %w", err)
		}
		replyIndex := -1
		for i := range replies {
			if replies[i].ID == id {
				replyIndex = i
				break
			}
		}
		if replyIndex == -1 {
			return apperrors.ErrReplyNotFound
		}
		reply := replies[replyIndex]

		tx.SaveReplies(append(replies[:replyIndex], replies[replyIndex+1:]...))

		posts, err := tx.Posts()
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}
		var categoryID string
		for i := range posts {
			if posts[i].ID == reply.PostID {
				posts[i].ReplyCount = max(0, posts[i].ReplyCount-1)
				categoryID = posts[i].CategoryID
				tx.SavePosts(posts)
				break
			}
		}
		if categoryID == "" {
			// The parent post is already gone; nothing left to decrement.
			return nil
		}

		categories, err := tx.Categories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		for i := range categories {
			if categories[i].ID == categoryID {
				categories[i].ReplyCount = max(0, categories[i].ReplyCount-1)
				tx.SaveCategories(categories)
				break
			}
		}
		return nil
	})
}
