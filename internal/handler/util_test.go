package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

func TestRequestLoggerCarriesCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLogger(log, r).Warn("quick search failed")
	})
	h = middleware.Logging(logger.NewNop())(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("quick search failed").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["correlation_id"]; got != "corr-42" {
		t.Errorf("Expected correlation_id corr-42, got %v", got)
	}
}
