package repository

import (
	"context"

	"portfolio-backend/internal/domain/model"
)

// MessageRepository is the narrow read/append contract over the durable
// message store. Messages are never mutated or deleted here.
type MessageRepository interface {
	// CountBySession returns the number of stored messages for a session.
	CountBySession(ctx context.Context, sessionID string) (int, error)

	// ListBySession returns up to limit messages for the session in
	// chronological order. When newestFirst is set the window covers the
	// most recent messages (still returned oldest-first); otherwise it is
	// the earliest-retained prefix of the session history.
	ListBySession(ctx context.Context, sessionID string, limit int, newestFirst bool) ([]model.ChatMessage, error)

	// AppendTurns stores the user and assistant turns of one exchange as a
	// single logical append.
	AppendTurns(ctx context.Context, sessionID, userText, assistantText string) error
}
