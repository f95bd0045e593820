package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the forum-wide role of a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

type User struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	// TODO: hash passwords with bcrypt before storing. The store keeps the
	// raw password today and every API projection must go through Safe().
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Role      Role      `json:"role"`

	// Ban state. BanEndDate == nil means the ban is permanent.
	IsBanned   bool       `json:"is_banned"`
	BanReason  *string    `json:"ban_reason,omitempty"`
	BanDate    *time.Time `json:"ban_date,omitempty"`
	BanEndDate *time.Time `json:"ban_end_date,omitempty"`
	BannedBy   *string    `json:"banned_by,omitempty"`

	// Mute state. A mute is always time-bounded, so MuteEndDate is set
	// whenever IsMuted is true.
	IsMuted     bool       `json:"is_muted"`
	MuteReason  *string    `json:"mute_reason,omitempty"`
	MuteDate    *time.Time `json:"mute_date,omitempty"`
	MuteEndDate *time.Time `json:"mute_end_date,omitempty"`
	MutedBy     *string    `json:"muted_by,omitempty"`
}

// Safe returns a copy of the user with the password stripped, suitable for
// API responses.
func (u User) Safe() User {
	u.Password = ""
	return u
}

// Validate checks basic user fields
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email")
	}
	if u.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if len(u.DisplayName) < 2 || len(u.DisplayName) > 100 {
		return fmt.Errorf("display name length invalid")
	}
	return nil
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdatePasswordRequest struct {
	UserID          string `json:"userId" binding:"required"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type DeleteAccountRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// ModerationRequest is the shared body of the ban/unban/mute/unmute
// endpoints. The acting moderator states its own identity; the server
// authorizes that claimed actor against the permission engine.
type ModerationRequest struct {
	ModeratorID  string `json:"moderatorId" binding:"required"`
	TargetUserID string `json:"targetUserId" binding:"required"`
	Reason       string `json:"reason"`
	Duration     int    `json:"duration"`
}

// ModeratedUser is the projection returned by the ban/mute endpoints.
type ModeratedUser struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	IsBanned    bool       `json:"is_banned"`
	BanEndDate  *time.Time `json:"ban_end_date,omitempty"`
	IsMuted     bool       `json:"is_muted"`
	MuteEndDate *time.Time `json:"mute_end_date,omitempty"`
}
