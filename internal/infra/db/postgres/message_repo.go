package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"portfolio-backend/internal/domain/model"
	"portfolio-backend/internal/domain/ports/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo persists chat turns. Rows are append-only; this service
// never updates or deletes them.
type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	const q = `SELECT COUNT(*) FROM chat_messages WHERE session_id = $1;`
	var count int
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func (r *MessageRepo) ListBySession(ctx context.Context, sessionID string, limit int, newestFirst bool) ([]model.ChatMessage, error) {
	// Both turns of an exchange are inserted in one transaction, so they
	// share the transaction timestamp; id breaks the tie in insertion order.
	q := `
SELECT session_id, role, content, created_at
FROM chat_messages
WHERE session_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2;`
	if newestFirst {
		q = `
SELECT session_id, role, content, created_at
FROM chat_messages
WHERE session_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	}

	rows, err := r.pool.Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if newestFirst {
		// Window covers the most recent messages; callers always receive
		// chronological order.
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
	}
	return msgs, nil
}

func (r *MessageRepo) AppendTurns(ctx context.Context, sessionID, userText, assistantText string) error {
	const q = `
INSERT INTO chat_messages (session_id, role, content, created_at)
VALUES ($1, $2, $3, NOW());`

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, q, sessionID, model.RoleUser, userText); err != nil {
			return fmt.Errorf("insert user turn: %w", err)
		}
		if _, err := tx.Exec(ctx, q, sessionID, model.RoleAssistant, assistantText); err != nil {
			return fmt.Errorf("insert assistant turn: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append turns: %w", err)
	}
	return nil
}

func (r *MessageRepo) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
