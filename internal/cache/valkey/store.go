// Package valkey implements cache.Store on a Valkey server
package valkey

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
)

// Store keeps compressed aggregates in Valkey with server-side expiry
type Store struct {
	client valkey.Client
	codec  *Codec
	log    *zap.Logger
}

// NewStore connects to Valkey using the given configuration
func NewStore(ctx context.Context, cfg config.Valkey, log *zap.Logger) (*Store, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	log.Info("Connecting to Valkey",
		zap.String("address", addr),
		zap.Int("db", cfg.DB))

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		log.Error("Failed to connect to Valkey", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	store, err := NewStoreWithClient(client, log)
	if err != nil {
		client.Close()
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		log.Error("Failed to ping Valkey", zap.Error(err))
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	log.Info("Valkey connection established successfully")
	return store, nil
}

// NewStoreWithClient wraps an existing Valkey client
func NewStoreWithClient(client valkey.Client, log *zap.Logger) (*Store, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &Store{client: client, codec: codec, log: log}, nil
}

// Get reads and decompresses the value stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache key: %w", err)
	}

	value, err := s.codec.Decode(payload)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put compresses value and stores it with a millisecond expiry.
// Expiries below one millisecond are rounded up, since PX 0 is rejected.
func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.B().Set().
		Key(key).
		Value(valkey.BinaryString(s.codec.Encode(value))).
		PxMilliseconds(expiryMillis(ttl)).
		Build()

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

// Invalidate deletes keys in a single DEL
func (s *Store) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Del().Key(keys...).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// Ping checks if the Valkey server is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close closes the Valkey client
func (s *Store) Close() error {
	s.log.Info("Closing Valkey connection")
	s.client.Close()
	s.codec.Close()
	return nil
}

func expiryMillis(ttl time.Duration) int64 {
	if ms := ttl.Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}
