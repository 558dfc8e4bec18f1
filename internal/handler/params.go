package handler

import (
	"strings"
	"time"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

const dateLayout = "2006-01-02"

// parseTimeRange reads optional start and end dates.
// A bare date starts at 00:00 UTC for start and runs through the end of that day for end.
func parseTimeRange(start, end string) (domain.TimeRange, error) {
	var timeRange domain.TimeRange

	from, err := parseDate("start_date", start, false)
	if err != nil {
		return timeRange, err
	}
	to, err := parseDate("end_date", end, true)
	if err != nil {
		return timeRange, err
	}

	timeRange = domain.TimeRange{Start: from, End: to}
	return timeRange, timeRange.Validate()
}

func parseDate(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}

	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.InvalidArgument("%s must be YYYY-MM-DD or RFC3339, got %q", name, raw)
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}
