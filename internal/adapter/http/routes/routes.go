package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"topreparateurs/internal/adapter/http/handlers"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/app"
	"topreparateurs/internal/config"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Quotes   *handlers.QuoteHandler
	Payments *handlers.PaymentHandler
	Disputes *handlers.DisputeHandler
	Holds    *handlers.HoldHandler
	Webhooks *handlers.WebhookHandler
}

// HandlersFor builds every handler over the wired use cases.
func HandlersFor(a *app.App) Handlers {
	return Handlers{
		Quotes:   handlers.NewQuoteHandler(a.Quotes),
		Payments: handlers.NewPaymentHandler(a.Payments, a.Quotes, a.Holds),
		Disputes: handlers.NewDisputeHandler(a.Disputes),
		Holds:    handlers.NewHoldHandler(a.Holds),
		Webhooks: handlers.NewWebhookHandler(a.Webhook, a.Quotes),
	}
}

// Options carries the middleware settings.
type Options struct {
	Auth       middleware.AuthConfig
	RateLimit  int
	RateWindow time.Duration
}

func OptionsFrom(cfg config.Config) Options {
	return Options{
		Auth:       middleware.AuthConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer},
		RateLimit:  cfg.Rate.Limit,
		RateWindow: cfg.Rate.Window,
	}
}

// NewRouter mounts public and authenticated routes on a fresh engine.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit(middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow)))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", health)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWebhookRoutes(v1, h.Webhooks)

	protected := v1.Group("")
	protected.Use(middleware.Auth(opts.Auth))
	addQuoteRoutes(protected, h.Quotes, h.Disputes)
	addBillingRoutes(protected, h.Payments, h.Holds)
	addDisputeRoutes(protected, h.Disputes)
	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Serve runs handler on addr until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "[server] listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
