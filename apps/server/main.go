package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	githubadapter "github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/adapters/github"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/handler"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/config"
	platformgithub "github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/github"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/logger"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/telemetry"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/validation"
	"github.com/erlanggapratamaP/elang-mcp-server/schemas"
)

func main() {
	slog := logger.New()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// --- Observability ---

	// Default the service name before any OTel init.
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", "elang-mcp-server") //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	ctx := context.Background()
	tel, err := telemetry.New(ctx, otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Platform: GitHub clients ---

	factory, err := platformgithub.NewClientFactory(platformgithub.Options{
		BaseURL:        cfg.GitHub.BaseURL,
		AppID:          cfg.GitHub.AppID,
		InstallationID: cfg.GitHub.InstallationID,
		PrivateKeyPath: cfg.GitHub.PrivateKeyPath,
	})
	if err != nil {
		slog.Error("github client factory init failed", "error", err)
		os.Exit(1)
	}

	// --- Domain ---

	bus := broadcast.NewWithBuffer(slog, cfg.ObserverBuffer)
	svc := inspection.NewService(githubadapter.NewProvider(factory), bus, slog)

	// --- HTTP ---

	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router.Use(gin.Recovery(), otelgin.Middleware("elang-mcp-server"), validator)
	handler.RegisterRoutes(router, svc, bus, slog, cfg.KeepAlive())

	slog.Info("starting inspection server",
		"port", cfg.Port, "appAuth", factory.ServerAuthenticated())
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
