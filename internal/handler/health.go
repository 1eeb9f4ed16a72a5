package handler

import (
	"net/http"

	natsclient "github.com/capitalize-ai/gamebot/internal/nats"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	natsClient        *natsclient.Client
	chatConfigured    bool
	catalogConfigured bool
}

// NewHealthHandler creates a new health handler. natsClient is nil when
// turn events are disabled.
func NewHealthHandler(natsClient *natsclient.Client, chatConfigured, catalogConfigured bool) *HealthHandler {
	return &HealthHandler{
		natsClient:        natsClient,
		chatConfigured:    chatConfigured,
		catalogConfigured: catalogConfigured,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.natsClient != nil && !h.natsClient.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"chat":    h.chatConfigured,
		"catalog": h.catalogConfigured,
	})
}
