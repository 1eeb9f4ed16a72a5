// Package handler provides HTTP handlers for the GameBot API.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/service"
	"github.com/capitalize-ai/gamebot/internal/session"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

// SessionHandler handles session endpoints.
type SessionHandler struct {
	sessions *service.Sessions
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.Sessions, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   log,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	sess, err := h.sessions.Create(ctx, userID)
	if err != nil {
		requestLogger(h.logger, r).Error("failed to create session", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, service.View(sess))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, service.View(sess))
}

// Turns handles GET /api/v1/sessions/{id}/turns
func (h *SessionHandler) Turns(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r, h.sessions)
	if !ok {
		return
	}

	turns := sess.Transcript()
	writeJSON(w, http.StatusOK, &model.ListTurnsResponse{
		Turns: turns,
		Total: len(turns),
	})
}

// loadSession resolves the {id} URL parameter for the calling user and
// writes the error response when it cannot.
func loadSession(w http.ResponseWriter, r *http.Request, sessions *service.Sessions) (*session.Session, bool) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	sess, err := sessions.Get(ctx, middleware.GetUserID(ctx), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load session")
		}
		return nil, false
	}
	return sess, true
}
