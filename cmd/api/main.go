// Package main is the entry point for the GameBot API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/config"
	"github.com/capitalize-ai/gamebot/internal/handler"
	"github.com/capitalize-ai/gamebot/internal/llm"
	natsclient "github.com/capitalize-ai/gamebot/internal/nats"
	"github.com/capitalize-ai/gamebot/internal/service"
	"github.com/capitalize-ai/gamebot/pkg/logger"
	"github.com/capitalize-ai/gamebot/pkg/tracing"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting GameBot server", zap.String("chat_provider", cfg.Chat.Provider))

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "gamebot", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	if !cfg.ChatConfigured() {
		log.Warn("chat backend API key not set, chat is disabled", zap.String("provider", cfg.Chat.Provider))
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		log.Warn("CORS_ALLOWED_ORIGINS not set, allowing any origin")
	}
	if !cfg.CatalogConfigured() {
		log.Warn("RAWG_API_KEY not set, game lookups will fail")
	}

	// Turn events are optional.
	var natsClient *natsclient.Client
	var publisher service.TurnPublisher
	if cfg.NATSURL != "" {
		natsClient, err = natsclient.Connect(natsclient.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, turn events disabled", zap.Error(err))
		} else {
			defer natsClient.Close()
			publisher = natsclient.NewPublisher(natsClient)
		}
	}

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:  cfg.RAWGBaseURL,
		APIKey:   cfg.RAWGAPIKey,
		Timeout:  cfg.CatalogTimeout,
		PageSize: cfg.CatalogPageSize,
	}, log)

	var factory service.BackendFactory
	if cfg.ChatConfigured() {
		factory = func(ctx context.Context) (llm.Client, error) {
			return llm.NewClient(ctx, llm.Provider(cfg.Chat.Provider), cfg.Chat.ChatAPIKey())
		}
	}

	sessions := service.NewSessions(factory, chatOptions(cfg.Chat), publisher, log)
	orchestrator := service.NewOrchestrator(catalogClient, publisher, log, service.Options{
		ChatConfigured:  cfg.ChatConfigured(),
		SearchLimit:     cfg.CatalogPageSize,
		ScreenshotCount: cfg.CatalogScreenshots,
	})

	router := handler.NewRouter(handler.RouterConfig{
		Health:            handler.NewHealthHandler(natsClient, cfg.ChatConfigured(), catalogClient.Configured()),
		Sessions:          handler.NewSessionHandler(sessions, log),
		Messages:          handler.NewMessageHandler(sessions, orchestrator, log),
		Games:             handler.NewGameHandler(sessions, orchestrator, log),
		JWTSecret:         cfg.JWTSecret,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server", zap.Int("sessions", sessions.Count()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	var log *logger.Logger
	var err error
	if cfg.Development() {
		log, err = logger.NewDevelopment()
	} else {
		log, err = logger.New(cfg.LogLevel)
	}
	if err != nil {
		return nil, err
	}
	if cfg.LogFile != "" {
		log = log.WithFile(cfg.LogFile, cfg.LogLevel)
	}
	return log, nil
}

func chatOptions(c config.ChatConfig) llm.Options {
	opts := llm.DefaultOptions()
	opts.Model = c.Model
	opts.Temperature = c.Temperature
	opts.TopP = c.TopP
	opts.TopK = c.TopK
	opts.MaxTokens = c.MaxTokens
	opts.Timeout = c.Timeout
	return opts
}
