package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"portfolio-backend/internal/domain/model"
	"portfolio-backend/internal/infra/metrics"
)

// Forwarder posts sanitized contact submissions to the configured
// outbound webhook (a spreadsheet ingestion endpoint in production).
type Forwarder struct {
	url    string
	client *http.Client
	log    *zerolog.Logger
}

func NewForwarder(url string, timeout time.Duration, logger *zerolog.Logger) *Forwarder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	l := logger.With().Str("component", "ContactForwarder").Logger()
	return &Forwarder{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    &l,
	}
}

// Forward delivers the submission. The webhook owns durability; there is
// no retry here, the caller surfaces failure to the client.
func (f *Forwarder) Forward(ctx context.Context, sub model.ContactSubmission) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.IncContactForward("error")
		return fmt.Errorf("webhook call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncContactForward("error")
		f.log.Error().Int("status", resp.StatusCode).Msg("webhook error response")
		return fmt.Errorf("webhook http %d", resp.StatusCode)
	}
	metrics.IncContactForward("ok")
	return nil
}
