package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/format"
	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

// requestLogger tags log with the request's correlation ID.
func requestLogger(log *logger.Logger, r *http.Request) *logger.Logger {
	return log.With(zap.String("correlation_id", middleware.GetCorrelationID(r.Context())))
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeCatalogError maps a catalog failure to a status and a user-facing reason.
func writeCatalogError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, catalog.ErrUnauthorized):
		status = http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	}
	writeError(w, status, format.CatalogReason(err))
}
