// Package identity maps presented API keys to the applications they belong to
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// Provider resolves credentials and applications.
// Resolve returns domain.ErrUnauthorized for an unknown key and Lookup
// returns domain.ErrNotFound for an unknown application; neither checks
// whether the application is active or expired.
type Provider interface {
	Resolve(ctx context.Context, presentedKey string) (*domain.Application, error)
	Lookup(ctx context.Context, applicationID string) (*domain.Application, error)
}

// HashKey returns the hex SHA-256 digest under which a key is stored
func HashKey(presentedKey string) string {
	hash := sha256.Sum256([]byte(presentedKey))
	return hex.EncodeToString(hash[:])
}

// StaticProvider is an in-memory Provider for development and tests
type StaticProvider struct {
	mu    sync.RWMutex
	byKey map[string]domain.Application
	byID  map[string]domain.Application
}

// NewStaticProvider creates an empty provider
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		byKey: make(map[string]domain.Application),
		byID:  make(map[string]domain.Application),
	}
}

// Register associates presentedKey with app
func (p *StaticProvider) Register(presentedKey string, app domain.Application) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.byKey[HashKey(presentedKey)] = app
	p.byID[app.ApplicationID] = app
}

// Resolve returns the application owning presentedKey
func (p *StaticProvider) Resolve(ctx context.Context, presentedKey string) (*domain.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DependencyUnavailable("identity provider", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	app, ok := p.byKey[HashKey(presentedKey)]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &app, nil
}

// Lookup returns the application with the given ID
func (p *StaticProvider) Lookup(ctx context.Context, applicationID string) (*domain.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DependencyUnavailable("identity provider", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	app, ok := p.byID[applicationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &app, nil
}
