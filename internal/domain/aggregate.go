package domain

import "time"

// AggregateKind names a family of derived statistics
type AggregateKind string

const (
	KindEventSummary       AggregateKind = "event-summary"
	KindUserStats          AggregateKind = "user-stats"
	KindTimeSeries         AggregateKind = "time-series"
	KindAttributeBreakdown AggregateKind = "attribute-breakdown"
)

const (
	// UnknownAttributeValue is the bucket for events that do not carry the attribute
	UnknownAttributeValue = "unknown"
	// MaxTimeSeriesBuckets caps a time series; older buckets are dropped
	MaxTimeSeriesBuckets = 100
)

// Interval is the bucket width of a time series
type Interval string

const (
	IntervalHour  Interval = "hour"
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// Dimension is an event attribute that can be broken down
type Dimension string

const (
	DimensionDevice  Dimension = "device"
	DimensionBrowser Dimension = "browser"
	DimensionURL     Dimension = "url"
)

// EventSummary is the count, distinct visitor count and device histogram of one event name
type EventSummary struct {
	EventName       string            `json:"event_name"`
	Start           *time.Time        `json:"start,omitempty"`
	End             *time.Time        `json:"end,omitempty"`
	Count           uint64            `json:"count"`
	UniqueVisitors  uint64            `json:"unique_visitors"`
	DeviceHistogram map[string]uint64 `json:"device_histogram"`
}

// VisitorStats summarises everything one visitor did within an application
type VisitorStats struct {
	VisitorID          string            `json:"visitor_id"`
	TotalEvents        uint64            `json:"total_events"`
	EventBreakdown     map[string]uint64 `json:"event_breakdown"`
	LastSeenDevice     string            `json:"last_seen_device,omitempty"`
	LastSeenAttributes map[string]string `json:"last_seen_attributes"`
}

// TimeSeriesBucket is one interval of a time series
type TimeSeriesBucket struct {
	BucketStart    time.Time `json:"bucket_start"`
	Count          uint64    `json:"count"`
	UniqueVisitors uint64    `json:"unique_visitors"`
}

// BreakdownEntry is one value of a dimension and how often it occurred
type BreakdownEntry struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}
