package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

// RouterConfig carries the handlers and settings for the API router.
type RouterConfig struct {
	Health   *HealthHandler
	Sessions *SessionHandler
	Messages *MessageHandler
	Games    *GameHandler

	JWTSecret         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	AllowedOrigins    []string
	Logger            *logger.Logger
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", cfg.Health.Health)
	r.Get("/ready", cfg.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}

		r.Get("/prompts", cfg.Games.Prompts)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", cfg.Sessions.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.Sessions.Get)
				r.Get("/turns", cfg.Sessions.Turns)
				r.Post("/messages", cfg.Messages.Send)
				r.Get("/games", cfg.Games.Search)
				r.Post("/games/{gameID}/details", cfg.Games.Details)
			})
		})
	})

	return r
}
