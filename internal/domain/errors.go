package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a missing or malformed caller-supplied field
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized marks a missing or unrecognised credential
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks a recognised credential that was revoked or has expired
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a referenced application or resource that does not exist
	ErrNotFound = errors.New("not found")
	// ErrDependencyUnavailable marks an unreachable or timed out event store, cache or identity provider
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// InvalidArgument returns an ErrInvalidArgument carrying a formatted message
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// DependencyUnavailable wraps err from the named dependency as ErrDependencyUnavailable
func DependencyUnavailable(dependency string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, dependency, err)
}
