package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
)

// errorStatus maps the error taxonomy onto HTTP statuses and error codes
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, "dependency_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	status, code := errorStatus(err)

	// Dependency and internal details stay in the logs.
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	return status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	c.JSON(errorResponse(err))
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errorResponse(err))
}

func (h *Handler) bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
