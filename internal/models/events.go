package models

import "time"

// WebSocket event types for the forum feed
const (
	EventPostNew        = "post.new"
	EventPostDeleted    = "post.deleted"
	EventReplyNew       = "reply.new"
	EventReplyDeleted   = "reply.deleted"
	EventPresenceUpdate = "presence.update"
	EventError          = "error"
)

type WSMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type UserPresence struct {
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"` // online, offline
	LastSeen time.Time `json:"last_seen"`
}

type WSErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
