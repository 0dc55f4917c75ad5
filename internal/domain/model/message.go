package model

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one persisted turn of a conversation session.
// Sessions have no record of their own; they are the set of messages
// sharing a session id, ordered by CreatedAt.
type ChatMessage struct {
	SessionID string
	Role      string // "user" | "assistant"
	Content   string
	CreatedAt time.Time
}
