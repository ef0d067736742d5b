package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dakota/config"
	"dakota/handlers"
	"dakota/middleware"
	"dakota/models"
	"dakota/routes"
	"dakota/services/chatkit"
	"dakota/services/payments"
	"dakota/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// manifestFromConfig collects the slideshow settings the page and API share.
func manifestFromConfig(cfg config.Config) models.SlideshowManifest {
	return models.SlideshowManifest{
		Slides:         cfg.Slides,
		Autoplay:       cfg.SlideshowAutoplay,
		IntervalMs:     cfg.SlideshowIntervalMs,
		SwipeThreshold: cfg.SlideshowSwipeThreshold,
	}
}

// buildRouter wires services, handlers and middleware for cfg.
func buildRouter(cfg config.Config, logger *zap.Logger, ledger payments.EventLedger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// services.
	sessions := chatkit.NewClient(chatkit.Config{
		APIKey:     cfg.OpenAIKey,
		WorkflowID: cfg.ChatKitWorkflow,
		APIBase:    cfg.ChatKitAPIBase,
	}, nil, logger.Named("chatkit"))
	checkout := payments.NewStripeCheckout(cfg.StripeKey, cfg.SiteDomain, nil, logger.Named("checkout"))
	processor := payments.NewWebhookProcessor(cfg.StripeKey, cfg.StripeWebhookSecret, ledger, logger.Named("webhook"))

	manifest := manifestFromConfig(cfg)
	siteHandler := handlers.NewSiteHandler(manifest, cfg.ChatKitDomainKey)
	slideshowHandler := handlers.NewSlideshowHandler(manifest)
	configHandler := handlers.NewConfigHandler(cfg.StripePublishableKey)
	chatkitHandler := handlers.NewChatKitHandler(sessions, handlers.ChatKitSettings{
		HasOpenAIKey:         cfg.OpenAIKey != "",
		Model:                cfg.OpenAIModel,
		StripePublishableKey: cfg.StripePublishableKey,
	})
	checkoutHandler := handlers.NewCheckoutHandler(checkout)
	webhookHandler := handlers.NewWebhookHandler(processor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		HomeHandler:      siteHandler.HomeHandler,
		SlideshowHandler: slideshowHandler.ManifestHandler,
		ConfigHandler:    configHandler.PublicConfigHandler,

		CreateSessionHandler: chatkitHandler.CreateSessionHandler,
		ChatKitHealthHandler: chatkitHandler.HealthHandler,

		CreateCheckoutHandler: checkoutHandler.CreateCheckoutHandler,
		CheckoutStatusHandler: checkoutHandler.CheckoutStatusHandler,
		StripeWebhookHandler:  webhookHandler.StripeWebhookHandler,
	}

	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)
	return router
}

// webhookLedger prefers Redis and falls back to process memory.
func webhookLedger(cfg config.Config, logger *zap.Logger) payments.EventLedger {
	err := utils.InitWebhookCache()
	switch {
	case err == nil:
		logger.Info("Webhook ledger using Redis", zap.String("addr", cfg.RedisAddr))
		return payments.NewRedisLedger(utils.GetWebhookCacheClient(), cfg.WebhookEventTTL)
	case errors.Is(err, utils.ErrCacheDisabled):
		logger.Info("Webhook ledger using process memory")
	default:
		logger.Warn("Redis unavailable, webhook ledger using process memory", zap.Error(err))
	}
	return payments.NewMemoryLedger(cfg.WebhookEventTTL)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ledger := webhookLedger(cfg, logger)
	defer utils.CloseCaches()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	utils.StartHealthMonitor(ctx, utils.GetWebhookCacheClient(), 60*time.Second)

	router := buildRouter(cfg, logger, ledger)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		logger.Error("serve: server failed to start", zap.Error(err))
		return err
	case <-quit:
	}
	logger.Sugar().Info("serve: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("serve: server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
