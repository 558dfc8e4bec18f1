package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/bootstrap"
	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/logger"
)

// appctl registers an application in the identity store and prints its API key.
func main() {
	_ = godotenv.Load()

	applicationID := flag.String("id", "", "application id (required)")
	name := flag.String("name", "", "display name")
	apiKey := flag.String("key", "", "API key to register; generated when empty")
	validFor := flag.Duration("valid-for", 0, "key lifetime; 0 never expires")
	multiTenant := flag.Bool("multi-tenant", false, "allow reading other applications' summaries")
	flag.Parse()

	if *applicationID == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := bootstrap.Identity(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open identity store", zap.Error(err))
	}
	defer store.Close()

	key := *apiKey
	if key == "" {
		key = "ak_" + uuid.NewString()
	}

	app := domain.Application{
		ApplicationID: *applicationID,
		Name:          *name,
		Active:        true,
		MultiTenant:   *multiTenant,
	}
	if *validFor > 0 {
		app.ExpiresAt = time.Now().UTC().Add(*validFor)
	}

	if err := store.Register(ctx, app, key); err != nil {
		log.Fatal("Failed to register application", zap.Error(err))
	}

	log.Info("Application registered",
		zap.String("application_id", app.ApplicationID),
		zap.Bool("multi_tenant", app.MultiTenant))
	fmt.Println(key)
}
