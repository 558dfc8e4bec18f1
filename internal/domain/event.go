package domain

import "time"

// Event represents a single analytics event recorded for an application
type Event struct {
	EventID       string            `ch:"event_id" json:"event_id"`
	ApplicationID string            `ch:"application_id" json:"application_id"`
	EventName     string            `ch:"event_name" json:"event_name"`
	URL           string            `ch:"url" json:"url"`
	Referrer      string            `ch:"referrer" json:"referrer,omitempty"`
	Device        string            `ch:"device" json:"device,omitempty"`
	VisitorID     string            `ch:"visitor_id" json:"visitor_id"`
	Timestamp     time.Time         `ch:"timestamp" json:"timestamp"`
	Metadata      map[string]string `ch:"metadata" json:"metadata,omitempty"`
}

// After reports whether e was observed after other.
// Events with the same timestamp are ordered by event ID, which is time-ordered.
func (e *Event) After(other *Event) bool {
	if !e.Timestamp.Equal(other.Timestamp) {
		return e.Timestamp.After(other.Timestamp)
	}
	return e.EventID > other.EventID
}

// TimeRange is an optional, inclusive window over event timestamps.
// A nil bound leaves that side open.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range
func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Validate checks that the range is not inverted
func (r TimeRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return InvalidArgument("start date must be before or equal to end date")
	}
	return nil
}
