package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/bootstrap"
	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
	"github.com/sirikagonuguntla/website-analytics-api/internal/consumer"
	"github.com/sirikagonuguntla/website-analytics-api/internal/logger"
	"github.com/sirikagonuguntla/website-analytics-api/internal/queue/sqs"
	"github.com/sirikagonuguntla/website-analytics-api/internal/service"
)

func main() {
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

	log.Info("Starting consumer service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("store_driver", cfg.Store.Driver))

	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Fatal("The consumer needs a shared event store; STORE_DRIVER=memory is only supported by the API")
	}

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

	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// The service is used only to invalidate cached aggregates after each stored batch.
	invalidator := service.NewAnalyticsService(store, cacheStore, nil, service.Options{
		StoreTimeout: cfg.Store.Timeout,
		CacheTimeout: cfg.Cache.Timeout,
		Policy: cache.Policy{
			SummaryTTL:      cfg.Cache.SummaryTTL,
			VisitorStatsTTL: cfg.Cache.VisitorStatsTTL,
		},
	}, log)

	c := consumer.NewConsumer(cfg, sqsClient, store, invalidator, log)

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if healthy, _ := invalidator.Health(r.Context()); !healthy {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("Consumer starting")
		if err := c.Start(consumerCtx); err != nil {
			log.Error("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()
	<-done
}
