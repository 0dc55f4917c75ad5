package adapter

import (
	"context"
	"errors"
)

// Message represents a chat message sent to the completion provider.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Upstream failure kinds. Handlers map these to distinguishable status
// codes so the caller can decide whether to retry.
var (
	ErrRateLimited      = errors.New("upstream rate limited")
	ErrCreditsExhausted = errors.New("upstream credits exhausted")
	ErrTimeout          = errors.New("upstream call timed out")
)

// CompletionAdapter is the port for the hosted chat-completion provider.
type CompletionAdapter interface {
	// Complete sends the transcript and returns the assistant text.
	Complete(ctx context.Context, messages []Message) (string, error)
}
