package models

import "time"

type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// AuthorName is the author's display name copied at creation time,
	// not a user id. Renaming a user detaches them from their old posts.
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	CategoryID string    `json:"category_id"`
	// Denormalized category fields, copied at creation time.
	CategoryName string `json:"category_name"`
	CategorySlug string `json:"category_slug"`
	// ReplyCount is a cache; read paths recount live replies.
	ReplyCount  int      `json:"reply_count"`
	IsModerated bool     `json:"is_moderated,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// PostListItem is the category page projection of a post.
type PostListItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
	ReplyCount   int       `json:"reply_count"`
	CategorySlug string    `json:"category_slug"`
	CategoryName string    `json:"category_name"`
	IsModerated  bool      `json:"is_moderated,omitempty"`
}

// PostDetail is the post page projection, replies included.
type PostDetail struct {
	PostListItem
	Content string   `json:"content"`
	Replies []Reply  `json:"replies"`
	Images  []string `json:"images,omitempty"`
}

type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,min=3,max=200"`
	Content    string   `json:"content" binding:"required,min=10"`
	CategoryID string   `json:"categoryId" binding:"required"`
	AuthorID   string   `json:"authorId" binding:"required"`
	Images     []string `json:"images"`
}
