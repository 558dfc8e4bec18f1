package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/aggregate"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
)

// eventSummary handles GET /api/analytics/event-summary
// @Summary Event summary
// @Description Count, unique visitors and device histogram of one event name, optionally within a date range
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param event_name query string true "Event name" example:"page_view"
// @Param start_date query string false "Start date (YYYY-MM-DD or RFC3339)" example:"2024-01-01"
// @Param end_date query string false "End date (YYYY-MM-DD or RFC3339)" example:"2024-01-31"
// @Param app_id query string false "Application to read; multi-tenant keys only"
// @Success 200 {object} domain.EventSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/analytics/event-summary [get]
func (h *Handler) eventSummary(c *gin.Context) {
	var req dto.EventSummaryRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid event summary request", zap.Error(err))
		h.bindingError(c, err)
		return
	}

	timeRange, err := parseTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	applicationID, err := h.targetApplication(c, req.ApplicationID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.analyticsService.EventSummary(c.Request.Context(), applicationID, req.EventName, timeRange)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// userStats handles GET /api/analytics/user-stats
// @Summary Visitor stats
// @Description Total events, per-event breakdown and last seen attributes of one visitor
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param visitor_id query string true "Visitor identifier" example:"203.0.113.7"
// @Success 200 {object} domain.VisitorStats
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/analytics/user-stats [get]
func (h *Handler) userStats(c *gin.Context) {
	var req dto.UserStatsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid user stats request", zap.Error(err))
		h.bindingError(c, err)
		return
	}

	stats, err := h.analyticsService.UserStats(c.Request.Context(), callerApplication(c).ApplicationID, req.VisitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// timeSeries handles GET /api/analytics/time-series
// @Summary Time series
// @Description Event counts bucketed by hour, day, week or month, newest bucket first, at most 100 buckets
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param event_name query string true "Event name" example:"page_view"
// @Param start_date query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "End date (YYYY-MM-DD or RFC3339)"
// @Param interval query string false "Bucket width" Enums(hour, day, week, month) default(day)
// @Success 200 {object} dto.TimeSeriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/analytics/time-series [get]
func (h *Handler) timeSeries(c *gin.Context) {
	var req dto.TimeSeriesRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid time series request", zap.Error(err))
		h.bindingError(c, err)
		return
	}

	interval, err := aggregate.ParseInterval(req.Interval)
	if err != nil {
		h.respondError(c, err)
		return
	}

	timeRange, err := parseTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	buckets, err := h.analyticsService.TimeSeries(c.Request.Context(), callerApplication(c).ApplicationID, req.EventName, timeRange, interval)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if buckets == nil {
		buckets = []domain.TimeSeriesBucket{}
	}

	c.JSON(http.StatusOK, dto.TimeSeriesResponse{
		EventName: req.EventName,
		Interval:  interval,
		Buckets:   buckets,
	})
}

// breakdown handles GET /api/analytics/breakdown-by-{device,browser,url}
// @Summary Attribute breakdown
// @Description Event counts per device, browser or url, most frequent first; events without the attribute count as "unknown"
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param start_date query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "End date (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} dto.BreakdownResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/analytics/breakdown-by-device [get]
// @Router /api/analytics/breakdown-by-browser [get]
// @Router /api/analytics/breakdown-by-url [get]
func (h *Handler) breakdown(dimension domain.Dimension) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BreakdownRequest

		if err := c.ShouldBindQuery(&req); err != nil {
			h.log.Warn("Invalid breakdown request", zap.Error(err), zap.String("dimension", string(dimension)))
			h.bindingError(c, err)
			return
		}

		timeRange, err := parseTimeRange(req.StartDate, req.EndDate)
		if err != nil {
			h.respondError(c, err)
			return
		}

		entries, err := h.analyticsService.Breakdown(c.Request.Context(), callerApplication(c).ApplicationID, dimension, timeRange)
		if err != nil {
			h.respondError(c, err)
			return
		}

		if entries == nil {
			entries = []domain.BreakdownEntry{}
		}

		c.JSON(http.StatusOK, dto.BreakdownResponse{
			Dimension: dimension,
			Entries:   entries,
		})
	}
}

// healthCheck handles GET /health
// @Summary Health check
// @Description Report whether the event store and cache are reachable; only the event store decides readiness
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	healthy, dependencies := h.analyticsService.Health(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:       "unavailable",
			Dependencies: dependencies,
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       "ok",
		Dependencies: dependencies,
	})
}
