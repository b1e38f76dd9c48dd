package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/config"
	"github.com/meliview/meli_api/internal/handler"
	"github.com/meliview/meli_api/internal/middleware"
	"github.com/meliview/meli_api/internal/service"
	"github.com/meliview/meli_api/pkg/meli"
)

// main is the application entrypoint for the Mercado Livre lookup gateway.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting meli lookup gateway")

	// 3. Initialize Mercado Livre client
	meliClient := meli.NewClient(meli.Config{
		BaseURL:      cfg.Meli.BaseURL,
		ClientID:     cfg.Meli.ClientID,
		ClientSecret: cfg.Meli.ClientSecret,
		AccessToken:  cfg.Meli.AccessToken,
		RefreshToken: cfg.Meli.RefreshToken,
		Timeout:      cfg.Meli.Timeout,
	})

	// 3a. Warm the access token at startup; a failure is not fatal, the
	// public API still works unauthenticated.
	if meliClient.HasCredentials() {
		warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.Meli.Timeout)
		if _, ok := meliClient.AcquireToken(warmCtx); ok {
			log.Info().Msg("access token acquired")
		} else {
			log.Warn().Msg("could not acquire access token - continuing unauthenticated")
		}
		warmCancel()
	} else {
		log.Warn().Msg("marketplace credentials not configured - using public API")
	}

	// 4. Initialize history cache
	history := cache.NewHistoryCache(cfg.MaxHistory)

	// 5. Initialize services
	lookupSvc := service.NewLookupService(meliClient, history)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(meliClient),
		Status:  handler.NewStatusHandler(cfg, meliClient),
		Lookup:  handler.NewLookupHandler(lookupSvc),
		History: handler.NewHistoryHandler(history),
		Product: handler.NewProductHandler(history),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Status  *handler.StatusHandler
	Lookup  *handler.LookupHandler
	History *handler.HistoryHandler
	Product *handler.ProductHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.GET("/v1/status", handlers.Status.GetStatus)

	v1 := router.Group("/v1")
	{
		v1.POST("/lookup", handlers.Lookup.Lookup)
		v1.GET("/history", handlers.History.GetHistory)
		v1.DELETE("/history", handlers.History.ClearHistory)

		products := v1.Group("/products")
		{
			products.GET("/:code/simplified", handlers.Product.GetSimplified)
			products.GET("/:code/full", handlers.Product.GetFull)
			products.GET("/:code/full-shipping", handlers.Product.GetFullShipping)
			products.GET("/:code/raw", handlers.Product.GetRaw)
			products.GET("/:code/csv", handlers.Product.GetCSV)
			products.GET("/:code/csv-attributes", handlers.Product.GetCSVAttributes)
			products.GET("/:code/csv-shipping", handlers.Product.GetCSVShipping)
		}
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
