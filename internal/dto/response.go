package dto

import "github.com/sirikagonuguntla/website-analytics-api/internal/domain"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"event_name is required"`
}

// CollectEventResponse represents a stored event
type CollectEventResponse struct {
	EventID string `json:"event_id" example:"01902b6e-7a1c-7c3e-9a53-6f0a2f3c1d2e"`
	Status  string `json:"status" example:"stored"`
}

// CollectBulkEventsResponse represents a bulk submission outcome
type CollectBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty" example:"event 3: url is required"`
}

// TimeSeriesResponse represents a bucketed series, newest bucket first
type TimeSeriesResponse struct {
	EventName string                    `json:"event_name" example:"page_view"`
	Interval  domain.Interval           `json:"interval" example:"day"`
	Buckets   []domain.TimeSeriesBucket `json:"buckets"`
}

// BreakdownResponse represents an attribute breakdown, most frequent value first
type BreakdownResponse struct {
	Dimension domain.Dimension        `json:"dimension" example:"device"`
	Entries   []domain.BreakdownEntry `json:"entries"`
}

// HealthResponse reports the state of each dependency
type HealthResponse struct {
	Status       string            `json:"status" example:"ok"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
