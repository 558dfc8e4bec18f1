package domain

import "time"

// Application is a registered tenant; every event and aggregate belongs to exactly one
type Application struct {
	ApplicationID string    `db:"application_id"`
	Name          string    `db:"name"`
	Active        bool      `db:"active"`
	ExpiresAt     time.Time `db:"expires_at"`
	MultiTenant   bool      `db:"multi_tenant"`
}

// Authorize reports whether the application may use the API at the given time
func (a *Application) Authorize(now time.Time) error {
	if !a.Active {
		return ErrForbidden
	}
	if !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt) {
		return ErrForbidden
	}
	return nil
}
