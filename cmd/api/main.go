package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "topreparateurs/docs"
	"topreparateurs/internal/adapter/http/routes"
	"topreparateurs/internal/app"
	"topreparateurs/internal/config"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

// @title           TopReparateurs Repair API
// @version         1.0
// @description     Repair quotes with payment holds, disputes and repairer payouts.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is empty, every authenticated route will answer 401")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start the application", "err", err)
		os.Exit(1)
	}

	if cfg.Hold.AutoRelease {
		sweeper := usecase.NewHoldSweeper(a.Holds, cfg.Hold.SweepInterval, cfg.Hold.SweepLimit)
		go sweeper.Run(ctx)
		slog.Info("hold sweeper started", "interval", cfg.Hold.SweepInterval, "limit", cfg.Hold.SweepLimit)
	}

	gin.SetMode(gin.ReleaseMode)
	router := routes.NewRouter(routes.HandlersFor(a), routes.OptionsFrom(cfg))
	if err := routes.Serve(ctx, ":"+cfg.Port, router); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("server exited gracefully")
}
