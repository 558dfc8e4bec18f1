package dto

import "time"

// CollectEventRequest represents a single event submitted by an application
type CollectEventRequest struct {
	EventName string                 `json:"event_name" binding:"required" example:"page_view"`
	URL       string                 `json:"url" binding:"required" example:"https://example.com/pricing"`
	Referrer  string                 `json:"referrer" example:"https://google.com"`
	Device    string                 `json:"device" example:"mobile"`
	VisitorID string                 `json:"visitor_id" example:"203.0.113.7"`
	Timestamp *time.Time             `json:"timestamp" example:"2024-01-01T10:00:00Z"`
	Metadata  map[string]interface{} `json:"metadata" swaggertype:"object,string" example:"browser:firefox,plan:pro"`
}

// CollectEventsBulkRequest represents a bulk event submission
type CollectEventsBulkRequest struct {
	Events []CollectEventRequest `json:"events" binding:"required,min=1,max=1000"`
}

// EventSummaryRequest represents an event summary query
type EventSummaryRequest struct {
	EventName     string `form:"event_name" binding:"required" example:"page_view"`
	StartDate     string `form:"start_date" example:"2024-01-01"`
	EndDate       string `form:"end_date" example:"2024-01-31"`
	ApplicationID string `form:"app_id" example:"app_3f9c"`
}

// UserStatsRequest represents a visitor stats query
type UserStatsRequest struct {
	VisitorID string `form:"visitor_id" binding:"required" example:"203.0.113.7"`
}

// TimeSeriesRequest represents a time series query
type TimeSeriesRequest struct {
	EventName string `form:"event_name" binding:"required" example:"page_view"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-01-31"`
	Interval  string `form:"interval" example:"day"`
}

// BreakdownRequest represents an attribute breakdown query
type BreakdownRequest struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-01-31"`
}
