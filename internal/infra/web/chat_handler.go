package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/domain/ports/adapter"
	"portfolio-backend/internal/infra/logging"
	"portfolio-backend/internal/infra/metrics"
	"portfolio-backend/internal/infra/ratelimit"
	"portfolio-backend/internal/usecase"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// ChatHandler serves the retrieval-augmented chat endpoint.
type ChatHandler struct {
	uc         usecase.ChatUseCase
	limiter    ratelimit.Limiter
	retryAfter string // window length in seconds
	log        *zerolog.Logger
}

func NewChatHandler(uc usecase.ChatUseCase, limiter ratelimit.Limiter, windowSeconds int, logger *zerolog.Logger) *ChatHandler {
	l := logger.With().Str("component", "ChatHandler").Logger()
	return &ChatHandler{
		uc:         uc,
		limiter:    limiter,
		retryAfter: strconv.Itoa(windowSeconds),
		log:        &l,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)

	res, err := h.limiter.Allow(r.Context(), key)
	limiterDown := err != nil
	if limiterDown {
		// The limiter is advisory; admit when it cannot answer. No quota
		// header in that case, a made-up remaining count would mislead.
		h.log.Warn().Err(err).Msg("rate limiter unavailable, admitting request")
		res = ratelimit.Result{Allowed: true}
	}
	if !res.Allowed {
		metrics.IncRateLimited("chat")
		metrics.IncRequest("chat", http.StatusTooManyRequests)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Retry-After", h.retryAfter)
		respondError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please wait before sending more messages.")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncRequest("chat", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx := logging.WithSessID(r.Context(), req.SessionID)
	reply, err := h.uc.SendMessage(ctx, req.Message, req.SessionID)
	if err != nil {
		status, msg := chatErrorStatus(err)
		if status == http.StatusInternalServerError || status == http.StatusGatewayTimeout {
			logging.With(ctx, h.log).Error().Err(err).Msg("chat request failed")
		}
		metrics.IncRequest("chat", status)
		respondError(w, status, msg)
		return
	}

	metrics.IncRequest("chat", http.StatusOK)
	if !limiterDown {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	}
	respondJSON(w, http.StatusOK, chatResponse{Message: reply})
}

// chatErrorStatus maps use-case errors onto the response table: client
// errors keep their specific reason, upstream kinds get distinguishable
// status codes, infrastructure errors collapse to an opaque message.
func chatErrorStatus(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Reason
	case errors.Is(err, domain.ErrSessionLimit):
		return http.StatusTooManyRequests, "Session message limit reached. Please start a new conversation."
	case errors.Is(err, adapter.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	case errors.Is(err, adapter.ErrCreditsExhausted):
		return http.StatusPaymentRequired, "API credits exhausted. Please try again later."
	case errors.Is(err, adapter.ErrTimeout):
		return http.StatusGatewayTimeout, "The assistant took too long to respond. Please try again."
	default:
		return http.StatusInternalServerError, "An error occurred processing your request"
	}
}
