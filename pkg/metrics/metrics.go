// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// CatalogRequestDuration tracks game catalog call latency.
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Game catalog request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	// CatalogRequestsTotal counts game catalog calls by outcome.
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total game catalog requests",
		},
		[]string{"operation", "status"},
	)

	// ChatDuration tracks chat backend reply latency.
	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_backend_duration_seconds",
			Help:    "Chat backend reply duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// ChatTokensTotal tracks tokens exchanged with the chat backend.
	ChatTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_backend_tokens_total",
			Help: "Total chat backend tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// IntentsTotal counts classified user messages.
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intents_total",
			Help: "Total classified user messages",
		},
		[]string{"intent"},
	)

	// TurnsTotal counts transcript turns appended.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turns_total",
			Help: "Total transcript turns appended",
		},
		[]string{"role"},
	)

	// SessionsActive tracks sessions held in memory.
	SessionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of chat sessions held in memory",
		},
		[]string{"state"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCatalog records metrics for one catalog call.
func RecordCatalog(operation, status string, duration float64) {
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration)
	CatalogRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordChat records metrics for one chat backend call.
func RecordChat(provider, status string, duration float64, tokensIn, tokensOut int) {
	ChatDuration.WithLabelValues(provider, status).Observe(duration)
	ChatTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	ChatTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}
