package handler

import (
	"encoding/json"
	"net/http"

	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/service"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

// MessageHandler handles chat message endpoints.
type MessageHandler struct {
	sessions     *service.Sessions
	orchestrator *service.Orchestrator
	logger       *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(sessions *service.Sessions, orchestrator *service.Orchestrator, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		sessions:     sessions,
		orchestrator: orchestrator,
		logger:       log,
	}
}

// Send handles POST /api/v1/sessions/{id}/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	turns := h.orchestrator.HandleMessage(r.Context(), sess, req.Content)

	writeJSON(w, http.StatusOK, &model.SendMessageResponse{Turns: turns})
}
