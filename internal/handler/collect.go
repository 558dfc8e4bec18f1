package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
)

// collectEvent handles POST /api/collect
// @Summary Collect a single event
// @Description Validate and store one analytics event; affected cached aggregates are invalidated
// @Tags collect
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body dto.CollectEventRequest true "Event data"
// @Success 201 {object} dto.CollectEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/collect [post]
func (h *Handler) collectEvent(c *gin.Context) {
	var req dto.CollectEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("event_name", req.EventName))
		h.bindingError(c, err)
		return
	}

	if req.VisitorID == "" {
		req.VisitorID = c.ClientIP()
	}

	app := callerApplication(c)
	eventID, err := h.analyticsService.Ingest(c.Request.Context(), app.ApplicationID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Debug("Event stored",
		zap.String("event_id", eventID),
		zap.String("application_id", app.ApplicationID),
		zap.String("event_name", req.EventName))

	c.JSON(http.StatusCreated, dto.CollectEventResponse{
		EventID: eventID,
		Status:  "stored",
	})
}

// collectEventsBulk handles POST /api/collect/bulk
// @Summary Collect events in bulk
// @Description Validate each event independently and queue the valid ones for storage
// @Tags collect
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param events body dto.CollectEventsBulkRequest true "Bulk events data"
// @Success 202 {object} dto.CollectBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/collect/bulk [post]
func (h *Handler) collectEventsBulk(c *gin.Context) {
	var bulkRequest dto.CollectEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		h.bindingError(c, err)
		return
	}

	clientIP := c.ClientIP()
	for i := range bulkRequest.Events {
		if bulkRequest.Events[i].VisitorID == "" {
			bulkRequest.Events[i].VisitorID = clientIP
		}
	}

	app := callerApplication(c)
	eventIDs, errs, err := h.analyticsService.IngestBulk(c.Request.Context(), app.ApplicationID, bulkRequest.Events)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info("Bulk events processed",
		zap.String("application_id", app.ApplicationID),
		zap.Int("accepted", len(eventIDs)),
		zap.Int("rejected", len(errs)),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusAccepted, dto.CollectBulkEventsResponse{
		Accepted: len(eventIDs),
		Rejected: len(errs),
		EventIDs: eventIDs,
		Errors:   errs,
	})
}
