package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ustoz-pro/ustoz/internal/ai"
	"github.com/ustoz-pro/ustoz/internal/app"
	"github.com/ustoz-pro/ustoz/internal/generator"
	"github.com/ustoz-pro/ustoz/internal/i18n"
	"github.com/ustoz-pro/ustoz/internal/platform/config"
)

func main() {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	catalog, err := i18n.Load()
	if err != nil {
		slog.Error("failed to load locales", "error", err)
		os.Exit(1)
	}
	provider, svc := buildGenerator(cfg, catalog)

	defaultLang := i18n.Match(cfg.DefaultLanguage)
	sessions := app.NewSessionManager(func() *app.Controller {
		return app.NewController(svc, catalog, defaultLang)
	})

	srv := &server{
		sessions: sessions,
		catalog:  catalog,
		provider: provider,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation calls take seconds to minutes
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "provider", cfg.AI.Provider)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// buildGenerator selects the configured backend provider and wraps it in
// the generation client. An empty API key is allowed: the resulting calls
// fail at request time.
func buildGenerator(cfg *config.Config, catalog *i18n.Catalog) (ai.Provider, *generator.Service) {
	switch cfg.AI.Provider {
	case "openai":
		p := ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey)
		return p, generator.NewService(p, catalog,
			generator.WithSyllabusModel(cfg.AI.OpenAI.SyllabusModel),
			generator.WithMaterialsModel(cfg.AI.OpenAI.MaterialsModel),
		)
	default:
		p := ai.NewGoogleProvider(cfg.AI.Google.APIKey)
		return p, generator.NewService(p, catalog,
			generator.WithSyllabusModel(cfg.AI.Google.SyllabusModel),
			generator.WithMaterialsModel(cfg.AI.Google.MaterialsModel),
		)
	}
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
