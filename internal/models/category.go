package models

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	IconName    *string `json:"icon_name"`
	// IsModerated marks categories that only accept moderator posts.
	IsModerated bool `json:"is_moderated,omitempty"`
	// PostCount and ReplyCount are caches maintained on every mutation.
	// List and detail reads recompute them from the live posts/replies
	// documents, so the stored values never become the source of truth.
	PostCount  int `json:"post_count"`
	ReplyCount int `json:"reply_count"`
}
