package ai

import (
	"context"

	"portfolio-backend/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CompletionAdapter = (*limitedCompleter)(nil)

type limitedCompleter struct {
	inner adapter.CompletionAdapter
	sem   chan struct{}
}

// NewLimitedCompleter bounds the number of in-flight upstream calls.
func NewLimitedCompleter(inner adapter.CompletionAdapter, maxConcurrent int) adapter.CompletionAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedCompleter{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedCompleter) Complete(ctx context.Context, messages []adapter.Message) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Complete(ctx, messages)
}
