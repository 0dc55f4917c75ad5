package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"portfolio-backend/internal/domain/model"
)

// ContactForwarder delivers a sanitized submission to the outbound webhook.
type ContactForwarder interface {
	Forward(ctx context.Context, sub model.ContactSubmission) error
}

// Compile-time check
var _ ContactUseCase = (*contactUC)(nil)

type ContactUseCase interface {
	// Submit validates the form and forwards the sanitized payload. The
	// client key travels with the payload for spam tracking.
	Submit(ctx context.Context, in ContactInput, clientKey string) error
}

type contactUC struct {
	forwarder ContactForwarder
	log       *zerolog.Logger
}

func NewContactUseCase(forwarder ContactForwarder, logger *zerolog.Logger) *contactUC {
	l := logger.With().Str("component", "ContactUC").Logger()
	return &contactUC{forwarder: forwarder, log: &l}
}

func (c *contactUC) Submit(ctx context.Context, in ContactInput, clientKey string) error {
	sanitized, err := ValidateContactForm(in)
	if err != nil {
		return err
	}

	sub := model.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      sanitized.Name,
		Email:     sanitized.Email,
		Subject:   sanitized.Subject,
		Message:   sanitized.Message,
		Timestamp: time.Now().UTC(),
		ClientKey: clientKey,
	}

	c.log.Info().Str("submission_id", sub.ID).Msg("forwarding contact submission")
	return c.forwarder.Forward(ctx, sub)
}
