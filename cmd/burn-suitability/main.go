package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/burnai/go-burn-suitability/internal/api"
	"github.com/burnai/go-burn-suitability/internal/broadcast"
	"github.com/burnai/go-burn-suitability/internal/catalog"
	"github.com/burnai/go-burn-suitability/internal/config"
	"github.com/burnai/go-burn-suitability/internal/logging"
	"github.com/burnai/go-burn-suitability/internal/refresh"
	"github.com/burnai/go-burn-suitability/internal/repository"
	"github.com/burnai/go-burn-suitability/internal/signals"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatalf("Failed to load county catalog: %v", err)
	}
	slog.Info("county catalog loaded", "counties", cat.Len())

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create broadcaster for SSE streaming
	broadcaster := broadcast.NewBroadcaster()

	aggregator := signals.NewAggregator(
		signals.NewHTTPWeatherSource(cfg.Sources.WeatherURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPHazardSource(cfg.Sources.HazardURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPResourceSource(cfg.Sources.ResourcesURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPPermitSource(cfg.Sources.PermitsURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
	)

	// Start refresh manager
	mgr := refresh.NewManager(cfg, cat, aggregator, db, broadcaster, clockwork.NewRealClock())
	mgr.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(cat, db, broadcaster)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
