// Package permissions holds the pure authorization predicates for the forum.
// Every predicate tolerates a nil user, which represents an unauthenticated
// visitor. None of them consult the actor's own ban or mute state; that
// matches the behavior of the system this one replaces.
package permissions

import "github.com/labrinth/backend/internal/models"

// CanCreate reports whether a user may create posts or replies.
// All authenticated users can create content.
func CanCreate(user *models.User) bool {
	return user != nil
}

// CanReply reports whether a user may reply to the given post.
// Any authenticated user can reply today; the post argument is kept so a
// per-post restriction (locked threads) can slot in without an API change.
func CanReply(user *models.User, post *models.Post) bool {
	return user != nil
}

// CanCreateModeratedPost reports whether a user may post in moderated
// sections. Only admins and moderators can.
func CanCreateModeratedPost(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.Role == models.RoleModerator
}

// CanDeletePost reports whether a user may delete the given post.
// Admins and moderators can delete any post; everyone else only their own.
// Ownership is matched by display name, not by user id: renaming a user
// detaches them from their old content, and a reused display name inherits
// delete rights over it.
func CanDeletePost(user *models.User, post *models.Post) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin || user.Role == models.RoleModerator {
		return true
	}
	return user.DisplayName == post.AuthorName
}

// CanDeleteReply reports whether a user may delete the given reply.
// Same rules as CanDeletePost, display-name ownership included.
func CanDeleteReply(user *models.User, reply *models.Reply) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin || user.Role == models.RoleModerator {
		return true
	}
	return user.DisplayName == reply.AuthorName
}

// CanBanUser reports whether a user may ban other users.
func CanBanUser(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.Role == models.RoleModerator
}

// CanMuteUser reports whether a user may mute other users.
func CanMuteUser(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.Role == models.RoleModerator
}

// IsAdmin reports whether the user has admin privileges.
func IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin
}

// IsModerator reports whether the user has moderator privileges.
// Admins inherit moderator powers.
func IsModerator(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleModerator || user.Role == models.RoleAdmin
}
