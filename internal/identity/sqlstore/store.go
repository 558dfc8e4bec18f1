// Package sqlstore is an identity.Provider backed by an SQL applications table
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/identity"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	application_id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	api_key_hash CHAR(64) NOT NULL UNIQUE,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	expires_at TIMESTAMP NULL,
	multi_tenant BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const (
	selectByKeyHash = `
SELECT application_id, name, active, expires_at, multi_tenant
FROM applications
WHERE api_key_hash = ?`

	selectByID = `
SELECT application_id, name, active, expires_at, multi_tenant
FROM applications
WHERE application_id = ?`
)

type applicationRow struct {
	ApplicationID string       `db:"application_id"`
	Name          string       `db:"name"`
	Active        bool         `db:"active"`
	ExpiresAt     sql.NullTime `db:"expires_at"`
	MultiTenant   bool         `db:"multi_tenant"`
}

func (r applicationRow) toDomain() *domain.Application {
	app := &domain.Application{
		ApplicationID: r.ApplicationID,
		Name:          r.Name,
		Active:        r.Active,
		MultiTenant:   r.MultiTenant,
	}
	if r.ExpiresAt.Valid {
		app.ExpiresAt = r.ExpiresAt.Time.UTC()
	}
	return app
}

// Store resolves API keys against the applications table
type Store struct {
	db  *sqlx.DB
	log *zap.Logger
}

// Open connects to the database with the named driver ("postgres" or "sqlite3").
// The driver package must be imported by the caller.
func Open(ctx context.Context, driverName, dsn string, log *zap.Logger) (*Store, error) {
	log.Info("Connecting to identity database", zap.String("driver", driverName))

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error("Failed to ping identity database", zap.Error(err))
		return nil, fmt.Errorf("failed to ping identity database: %w", err)
	}

	return New(db, log), nil
}

// New wraps an open database handle
func New(db *sqlx.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// InitSchema creates the applications table if it does not exist
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create applications table: %w", err)
	}
	s.log.Info("Identity schema initialized successfully")
	return nil
}

// Register stores an application under the hash of presentedKey
func (s *Store) Register(ctx context.Context, app domain.Application, presentedKey string) error {
	var expiresAt sql.NullTime
	if !app.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: app.ExpiresAt.UTC(), Valid: true}
	}

	query := s.db.Rebind(`
		INSERT INTO applications (application_id, name, api_key_hash, active, expires_at, multi_tenant)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		app.ApplicationID,
		app.Name,
		identity.HashKey(presentedKey),
		app.Active,
		expiresAt,
		app.MultiTenant,
	)
	if err != nil {
		return fmt.Errorf("failed to register application %s: %w", app.ApplicationID, err)
	}
	return nil
}

// Resolve returns the application owning presentedKey
func (s *Store) Resolve(ctx context.Context, presentedKey string) (*domain.Application, error) {
	app, err := s.get(ctx, selectByKeyHash, identity.HashKey(presentedKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, domain.DependencyUnavailable("identity provider", err)
	}
	return app, nil
}

// Lookup returns the application with the given ID
func (s *Store) Lookup(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := s.get(ctx, selectByID, applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.DependencyUnavailable("identity provider", err)
	}
	return app, nil
}

// Ping checks if the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, query, value string) (*domain.Application, error) {
	var row applicationRow
	if err := s.db.GetContext(ctx, &row, s.db.Rebind(query), value); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}
