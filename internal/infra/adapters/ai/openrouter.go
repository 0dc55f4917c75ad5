package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"portfolio-backend/internal/domain/ports/adapter"
	"portfolio-backend/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.CompletionAdapter = (*OpenRouterAdapter)(nil)

// fallbackReply is returned when the provider answers 2xx without any
// choice content, so the user always receives a reply.
const fallbackReply = "Sorry, I couldn't generate a response."

// OpenRouterAdapter implements adapter.CompletionAdapter against
// OpenRouter's OpenAI-compatible gateway.
// Base URL defaults to https://openrouter.ai/api/v1 (configurable).
// Chat completions path is the same as OpenAI: /chat/completions
// Authorization: Bearer <OPENROUTER_API_KEY>
type OpenRouterAdapter struct {
	apiKey  string
	base    string // e.g., https://openrouter.ai/api/v1
	model   string
	referer string
	title   string
	client  *http.Client
	log     *zerolog.Logger
}

func NewOpenRouterAdapter(apiKey, model, base, referer, title string, timeout time.Duration, logger *zerolog.Logger) (*OpenRouterAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter api key empty")
	}
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	if base == "" {
		base = "https://openrouter.ai/api/v1"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	l := logger.With().Str("component", "OpenRouterAdapter").Logger()
	return &OpenRouterAdapter{
		apiKey:  apiKey,
		base:    strings.TrimRight(base, "/"),
		model:   model,
		referer: referer,
		title:   title,
		client:  &http.Client{Timeout: timeout},
		log:     &l,
	}, nil
}

func (o *OpenRouterAdapter) Complete(ctx context.Context, messages []adapter.Message) (string, error) {
	reqBody := struct {
		Model    string            `json:"model"`
		Messages []adapter.Message `json:"messages"`
		Stream   bool              `json:"stream"`
	}{Model: o.model, Messages: messages, Stream: false}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.referer != "" {
		req.Header.Set("HTTP-Referer", o.referer)
	}
	if o.title != "" {
		req.Header.Set("X-Title", o.title)
	}

	start := time.Now()
	resp, err := o.client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		metrics.ObserveUpstream(o.model, latency, false)
		if isTimeout(err) {
			metrics.IncUpstreamError("timeout")
			return "", adapter.ErrTimeout
		}
		metrics.IncUpstreamError("other")
		return "", fmt.Errorf("openrouter call: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.ObserveUpstream(o.model, latency, false)
		metrics.IncUpstreamError("rate_limited")
		return "", adapter.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		metrics.ObserveUpstream(o.model, latency, false)
		metrics.IncUpstreamError("credits")
		return "", adapter.ErrCreditsExhausted
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		o.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("openrouter error response")
		metrics.ObserveUpstream(o.model, latency, false)
		metrics.IncUpstreamError("other")
		return "", fmt.Errorf("openrouter http %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ObserveUpstream(o.model, latency, false)
		metrics.IncUpstreamError("other")
		return "", fmt.Errorf("decode response: %w", err)
	}
	metrics.ObserveUpstream(o.model, latency, true)

	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	// 2xx with no content is not an error.
	o.log.Warn().Msg("openrouter returned no choice content, using fallback reply")
	return fallbackReply, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
