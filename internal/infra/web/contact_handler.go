package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/infra/metrics"
	"portfolio-backend/internal/infra/ratelimit"
	"portfolio-backend/internal/usecase"
)

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactHandler relays contact-form submissions to the outbound webhook.
type ContactHandler struct {
	uc         usecase.ContactUseCase
	limiter    ratelimit.Limiter
	retryAfter string
	log        *zerolog.Logger
}

func NewContactHandler(uc usecase.ContactUseCase, limiter ratelimit.Limiter, windowSeconds int, logger *zerolog.Logger) *ContactHandler {
	l := logger.With().Str("component", "ContactHandler").Logger()
	return &ContactHandler{
		uc:         uc,
		limiter:    limiter,
		retryAfter: strconv.Itoa(windowSeconds),
		log:        &l,
	}
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)

	res, err := h.limiter.Allow(r.Context(), key)
	limiterDown := err != nil
	if limiterDown {
		h.log.Warn().Err(err).Msg("rate limiter unavailable, admitting request")
		res = ratelimit.Result{Allowed: true}
	}
	if !res.Allowed {
		h.log.Info().Str("client", key).Msg("contact submission rate limited")
		metrics.IncRateLimited("contact")
		metrics.IncRequest("contact", http.StatusTooManyRequests)
		w.Header().Set("Retry-After", h.retryAfter)
		respondError(w, http.StatusTooManyRequests, "Too many submissions. Please try again later.")
		return
	}

	var req usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncRequest("contact", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.uc.Submit(r.Context(), req, key); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			metrics.IncRequest("contact", http.StatusBadRequest)
			respondError(w, http.StatusBadRequest, ve.Reason)
			return
		}
		h.log.Error().Err(err).Msg("contact submission failed")
		metrics.IncRequest("contact", http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "An error occurred processing your request")
		return
	}

	metrics.IncRequest("contact", http.StatusOK)
	if !limiterDown {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	}
	respondJSON(w, http.StatusOK, contactResponse{Success: true, Message: "Form submitted successfully"})
}
