// Package bootstrap opens the concrete collaborators selected by configuration
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	// Identity database drivers, selected by IDENTITY_DRIVER.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/cache/valkey"
	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
	"github.com/sirikagonuguntla/website-analytics-api/internal/identity/sqlstore"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository/clickhouse"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository/memory"
)

// EventStore opens the event store named by STORE_DRIVER and makes sure its schema exists
func EventStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.EventStore, error) {
	var store repository.EventStore

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn("Using in-memory event store; events are lost on restart")
		store = memory.NewRepository(log)
	case config.StoreDriverClickHouse:
		client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create ClickHouse client: %w", err)
		}
		store = clickhouse.NewRepository(client, log)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	if err := store.InitSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize event store schema: %w", err)
	}

	return store, nil
}

// Cache opens Valkey when enabled and falls back to an in-process cache otherwise
func Cache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.Store, error) {
	if !cfg.Valkey.Enabled {
		log.Info("Valkey disabled, using in-memory cache")
		return cache.NewMemoryStore(nil), nil
	}

	store, err := valkey.NewStore(ctx, cfg.Valkey, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey cache: %w", err)
	}
	return store, nil
}

// Identity opens the SQL application registry and makes sure its table exists
func Identity(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(ctx, cfg.Identity.Driver, cfg.Identity.DSN, log)
	if err != nil {
		return nil, err
	}

	if err := store.InitSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
