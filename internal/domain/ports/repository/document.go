package repository

import (
	"context"

	"portfolio-backend/internal/domain/model"
)

// DocumentRepository reads the curated grounding documents.
type DocumentRepository interface {
	// List returns up to limit documents in store order.
	List(ctx context.Context, limit int) ([]model.Document, error)
}
