package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/format"
	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/service"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

// GameHandler handles the quick-search sidebar endpoints.
type GameHandler struct {
	sessions     *service.Sessions
	orchestrator *service.Orchestrator
	logger       *logger.Logger
}

// NewGameHandler creates a new game handler.
func NewGameHandler(sessions *service.Sessions, orchestrator *service.Orchestrator, log *logger.Logger) *GameHandler {
	return &GameHandler{
		sessions:     sessions,
		orchestrator: orchestrator,
		logger:       log,
	}
}

// Search handles GET /api/v1/sessions/{id}/games?search=
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r, h.sessions)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if err := middleware.ValidateSearchQuery(query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orchestrator.QuickSearch(r.Context(), sess, query)
	if err != nil {
		requestLogger(h.logger, r).Warn("quick search failed", zap.String("session_id", sess.ID()), zap.Error(err))
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &model.SearchGamesResponse{
		Query:   query,
		Results: summaries(results),
		Card:    format.SearchResults(results),
	})
}

// Details handles POST /api/v1/sessions/{id}/games/{gameID}/details
func (h *GameHandler) Details(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r, h.sessions)
	if !ok {
		return
	}

	gameID, err := middleware.ValidateGameID(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	turn, err := h.orchestrator.ShowDetails(r.Context(), sess, gameID)
	if err != nil {
		requestLogger(h.logger, r).Warn("game details failed", zap.String("session_id", sess.ID()), zap.Int("game_id", gameID), zap.Error(err))
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &model.SendMessageResponse{Turns: []model.Turn{turn}})
}

// Prompts handles GET /api/v1/prompts
func (h *GameHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &model.ExamplePromptsResponse{
		Prompts: h.orchestrator.ExamplePrompts(),
	})
}

func summaries(results []catalog.Summary) []model.GameSummary {
	out := make([]model.GameSummary, 0, len(results))
	for _, r := range results {
		out = append(out, model.GameSummary{
			ID:       r.ID,
			Name:     r.Name,
			Released: r.Released,
			Rating:   r.Rating,
		})
	}
	return out
}
