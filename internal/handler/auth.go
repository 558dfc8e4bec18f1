package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

const (
	apiKeyHeader          = "X-API-Key"
	applicationContextKey = "application"
)

// authenticate resolves the presented API key before any handler runs.
// Unknown keys are rejected with 401, revoked or expired applications with 403.
func (h *Handler) authenticate(c *gin.Context) {
	key := presentedKey(c)
	if key == "" {
		h.abortWithError(c, domain.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.identityTimeout)
	defer cancel()

	app, err := h.identity.Resolve(ctx, key)
	if err != nil {
		h.log.Warn("Failed to resolve API key", zap.String("path", c.FullPath()), zap.Error(err))
		h.abortWithError(c, err)
		return
	}

	if err := app.Authorize(h.clock.Now()); err != nil {
		h.log.Warn("Rejected revoked application",
			zap.String("application_id", app.ApplicationID),
			zap.Bool("active", app.Active),
			zap.Time("expires_at", app.ExpiresAt))
		h.abortWithError(c, err)
		return
	}

	c.Set(applicationContextKey, app)
	c.Next()
}

// presentedKey reads X-API-Key, falling back to a bearer token
func presentedKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(apiKeyHeader)); key != "" {
		return key
	}

	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func callerApplication(c *gin.Context) *domain.Application {
	return c.MustGet(applicationContextKey).(*domain.Application)
}

// targetApplication returns the application a query should read.
// Only multi-tenant callers may name another application.
func (h *Handler) targetApplication(c *gin.Context, requested string) (string, error) {
	caller := callerApplication(c)
	requested = strings.TrimSpace(requested)
	if requested == "" || requested == caller.ApplicationID {
		return caller.ApplicationID, nil
	}

	if !caller.MultiTenant {
		h.log.Warn("Application override denied",
			zap.String("application_id", caller.ApplicationID),
			zap.String("requested_application_id", requested))
		return "", domain.ErrForbidden
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.identityTimeout)
	defer cancel()

	target, err := h.identity.Lookup(ctx, requested)
	if err != nil {
		return "", err
	}
	return target.ApplicationID, nil
}
