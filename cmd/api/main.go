package main

import (
	"context"
	"fmt"
	"freightzone-backend/config"
	"freightzone-backend/internal/delivery/http/middleware"
	v1 "freightzone-backend/internal/delivery/http/v1"
	"freightzone-backend/internal/domain"
	"freightzone-backend/internal/infrastructure/cache"
	postgresrepo "freightzone-backend/internal/repository/postgres"
	"freightzone-backend/internal/usecase"
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/storage"
	"freightzone-backend/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "freightzone-backend"

var version = "dev"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database with pgx
	pgxPool, err := postgresrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	if err := postgresrepo.EnsureSchema(context.Background(), pgxPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// Initialize Repositories
	freightRepo := postgresrepo.NewFreightConfigRepository(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration follows the freight config TTL, cleanup every 10m
	memCache := cache.NewMemoryCache(cfg.CacheFreightConfigTTL, 10*time.Minute)

	// --- Storage Module (R2) ---
	// The rate card is only published when R2 is configured.
	var publisher domain.RateCardPublisher
	if cfg.R2Enabled() {
		r2Storage, err := storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		publisher = r2Storage
	}

	// Freight Module
	freightUC := usecase.NewFreightUsecase(freightRepo, memCache, publisher, cfg)
	freightHandler := v1.NewFreightHandler(freightUC, cfg.MaxOrderTotal)
	adminFreightHandler := v1.NewAdminFreightHandler(freightUC)

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterFreightRoutes(mux, freightHandler, adminFreightHandler)

	// Health Check
	healthHandler := v1.HealthHandler(pgxPool)
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	// Prometheus
	mux.Handle("GET /metrics", promhttp.Handler())

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(context.Background(), cfg)

	// Metrics sits directly on the mux so it can read the matched pattern
	handler := middleware.Metrics(mux)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Stop rate limiter cleanup goroutine
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
