package web

import (
	"net/http"
	"strings"
)

// unknownClientKey buckets all unattributable clients together. An
// accepted imprecision: they share one rate-limit window.
const unknownClientKey = "unknown"

// clientKey derives the rate-limit key from the forwarded-for chain,
// falling back to the real-ip header.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return unknownClientKey
}
