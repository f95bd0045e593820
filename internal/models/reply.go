package models

import "time"

type Reply struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
	// AuthorName carries the same display-name denormalization as Post.
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateReplyRequest struct {
	Content  string `json:"content" binding:"required"`
	PostID   string `json:"postId" binding:"required"`
	AuthorID string `json:"authorId" binding:"required"`
}

// ActivityItem is one entry of a user's combined post/reply history.
type ActivityItem struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"` // post, reply
	Title        string    `json:"title,omitempty"`
	PostTitle    string    `json:"postTitle,omitempty"`
	Content      string    `json:"content,omitempty"`
	Date         time.Time `json:"date"`
	Category     string    `json:"category,omitempty"`
	PostID       string    `json:"postId"`
	CategorySlug string    `json:"categorySlug"`
}
