package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"jan-server/services/search-web-tool/internal/infrastructure/config"
	"jan-server/services/search-web-tool/internal/infrastructure/deployment"
	"jan-server/services/search-web-tool/internal/infrastructure/logger"
	_ "jan-server/services/search-web-tool/internal/infrastructure/metrics" // Register Prometheus metrics
	"jan-server/services/search-web-tool/internal/infrastructure/observability"
	"jan-server/services/search-web-tool/internal/interfaces/httpserver"
)

const serviceName = "search-web-tool"

type Application struct {
	httpServer *httpserver.HTTPServer
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "json")
}

// @title Jan Server Search Web Tool
// @version 1.0
// @description Serper-backed news and web search exposed as MCP tools and as a module run endpoint.
// @contact.name Jan Server Team
// @contact.url https://github.com/janhq/jan-server
// @BasePath /
func (app *Application) Start(ctx context.Context) error {
	return app.httpServer.Run(ctx)
}

func main() {
	config.LoadEnvFiles()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Str("serper_base_url", cfg.SerperBaseURL).
		Msg("Starting search web tool service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.SetDefaultSanitizer(observability.NewSanitizer(observability.PIILevel(cfg.PIILevel), serviceName))
	shutdownTracing, err := observability.Setup(ctx, cfg.Observability(serviceName, deployment.DefaultVersion))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	// Create application with dependency injection
	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return
	}
	log.Info().Msg("Server stopped")
}
