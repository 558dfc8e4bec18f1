package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/docs"
	"github.com/sirikagonuguntla/website-analytics-api/internal/bootstrap"
	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
	"github.com/sirikagonuguntla/website-analytics-api/internal/handler"
	"github.com/sirikagonuguntla/website-analytics-api/internal/logger"
	"github.com/sirikagonuguntla/website-analytics-api/internal/queue"
	"github.com/sirikagonuguntla/website-analytics-api/internal/queue/sqs"
	"github.com/sirikagonuguntla/website-analytics-api/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title Website Analytics API
// @version 1.0
// @description Collect website and app events and query cached aggregates per application
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort),
		zap.String("store_driver", cfg.Store.Driver))

	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	store, err := bootstrap.EventStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open event store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close event store", zap.Error(err))
		}
	}()

	cacheStore, err := bootstrap.Cache(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open cache", zap.Error(err))
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			log.Error("Failed to close cache", zap.Error(err))
		}
	}()

	identityStore, err := bootstrap.Identity(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open identity store", zap.Error(err))
	}
	defer func() {
		if err := identityStore.Close(); err != nil {
			log.Error("Failed to close identity store", zap.Error(err))
		}
	}()

	// Without a queue, bulk submissions are stored synchronously.
	var publisher queue.QueuePublisher
	if cfg.SQS.QueueURL != "" {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
	} else {
		log.Warn("SQS_QUEUE_URL not set, bulk events will be written synchronously")
	}

	analyticsService := service.NewAnalyticsService(store, cacheStore, publisher, service.Options{
		StoreTimeout:  cfg.Store.Timeout,
		CacheTimeout:  cfg.Cache.Timeout,
		MaxFutureSkew: cfg.Ingest.MaxFutureSkew,
		Policy: cache.Policy{
			SummaryTTL:      cfg.Cache.SummaryTTL,
			VisitorStatsTTL: cfg.Cache.VisitorStatsTTL,
		},
	}, log)

	h := handler.NewHandler(analyticsService, identityStore, log, handler.WithIdentityTimeout(cfg.Store.Timeout))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}
}
