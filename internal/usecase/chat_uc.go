package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/domain/ports/adapter"
	"portfolio-backend/internal/domain/ports/repository"
	"portfolio-backend/internal/infra/metrics"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

type ChatUseCase interface {
	// SendMessage validates the inputs, enforces the per-session message
	// cap, assembles the grounded transcript, calls the completion
	// provider and best-effort persists both turns. It returns the
	// assistant reply or a typed error for the handler to map.
	SendMessage(ctx context.Context, message, sessionID string) (string, error)
}

type chatUC struct {
	messages repository.MessageRepository
	docs     repository.DocumentRepository
	ai       adapter.CompletionAdapter
	cfg      config.ChatConfig
	log      *zerolog.Logger
}

func NewChatUseCase(messages repository.MessageRepository, docs repository.DocumentRepository, ai adapter.CompletionAdapter, cfg config.ChatConfig, logger *zerolog.Logger) *chatUC {
	l := logger.With().Str("component", "ChatUC").Logger()
	return &chatUC{messages: messages, docs: docs, ai: ai, cfg: cfg, log: &l}
}

func (c *chatUC) SendMessage(ctx context.Context, message, sessionID string) (string, error) {
	msg, sid, err := ValidateChatInput(message, sessionID)
	if err != nil {
		return "", err
	}

	// Session flood guard. A hard cap on stored messages, not a window.
	// A failed count is non-blocking: this is a secondary protection
	// behind the rate limiter.
	count, err := c.messages.CountBySession(ctx, sid)
	if err != nil {
		c.log.Warn().Err(err).Str("session_id", sid).Msg("session count failed, skipping flood guard")
	} else if count >= c.cfg.SessionCap {
		metrics.IncSessionCap()
		return "", domain.ErrSessionLimit
	}

	// Grounding context and history degrade gracefully: a fetch failure
	// yields a context-free or history-free transcript, never an abort.
	docs, err := c.docs.List(ctx, c.cfg.MaxDocuments)
	if err != nil {
		c.log.Error().Err(err).Msg("document fetch failed")
		docs = nil
	}
	history, err := c.messages.ListBySession(ctx, sid, c.cfg.HistoryLimit, c.cfg.HistoryMode == "recent")
	if err != nil {
		c.log.Error().Err(err).Str("session_id", sid).Msg("history fetch failed")
		history = nil
	}

	transcript := BuildTranscript(docs, history, msg)
	c.log.Debug().Str("session_id", sid).Int("turns", len(transcript)).Msg("calling completion provider")

	reply, err := c.ai.Complete(ctx, transcript)
	if err != nil {
		return "", err
	}

	// Best-effort persistence: the user still receives the reply when the
	// append fails.
	if err := c.messages.AppendTurns(ctx, sid, msg, reply); err != nil {
		c.log.Error().Err(err).Str("session_id", sid).Msg("failed to persist turns")
	}
	return reply, nil
}
