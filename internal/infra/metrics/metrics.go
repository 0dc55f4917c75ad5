package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests by endpoint and outcome status code.",
		},
		[]string{"endpoint", "status"},
	)

	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Requests rejected by this service's own rate limiter.",
		},
		[]string{"endpoint"},
	)

	sessionCapTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_cap_rejections_total",
			Help: "Chat turns rejected because the session reached its message cap.",
		},
	)

	upstreamLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_latency_ms",
			Help:    "Completion call latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"model", "success"},
	)

	upstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Completion failures by kind (rate_limited/credits/timeout/other).",
		},
		[]string{"kind"},
	)

	contactForwardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_forwards_total",
			Help: "Contact submissions forwarded to the webhook, by outcome.",
		},
		[]string{"outcome"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			requestsTotal, rateLimitedTotal, sessionCapTotal,
			upstreamLatencyMs, upstreamErrorsTotal, contactForwardsTotal,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncRequest(endpoint string, status int) {
	requestsTotal.WithLabelValues(norm(endpoint), strconv.Itoa(status)).Inc()
}

func IncRateLimited(endpoint string) {
	rateLimitedTotal.WithLabelValues(norm(endpoint)).Inc()
}

func IncSessionCap() { sessionCapTotal.Inc() }

func ObserveUpstream(model string, latencyMs int64, success bool) {
	upstreamLatencyMs.WithLabelValues(norm(model), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncUpstreamError(kind string) {
	upstreamErrorsTotal.WithLabelValues(norm(kind)).Inc()
}

func IncContactForward(outcome string) {
	contactForwardsTotal.WithLabelValues(norm(outcome)).Inc()
}
