// Package aggregate computes summary statistics from a set of events.
//
// Every function is pure: it receives events already scoped to one application
// and returns exact integer counts without touching any store.
package aggregate

import (
	"sort"
	"time"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// Summarize counts the events named eventName, their distinct visitors and their device histogram
func Summarize(events []*domain.Event, eventName string, timeRange domain.TimeRange) (domain.EventSummary, error) {
	if eventName == "" {
		return domain.EventSummary{}, domain.InvalidArgument("event_name is required")
	}

	summary := domain.EventSummary{
		EventName:       eventName,
		Start:           timeRange.Start,
		End:             timeRange.End,
		DeviceHistogram: map[string]uint64{},
	}

	visitors := make(map[string]struct{})
	for _, event := range events {
		if event.EventName != eventName || !timeRange.Contains(event.Timestamp) {
			continue
		}
		summary.Count++
		visitors[event.VisitorID] = struct{}{}
		summary.DeviceHistogram[orUnknown(event.Device)]++
	}
	summary.UniqueVisitors = uint64(len(visitors))

	return summary, nil
}

// VisitorStats reports how many events visitorID produced, per event name, and what it was last seen with
func VisitorStats(events []*domain.Event, visitorID string) domain.VisitorStats {
	stats := domain.VisitorStats{
		VisitorID:          visitorID,
		EventBreakdown:     map[string]uint64{},
		LastSeenAttributes: map[string]string{},
	}

	var deviceSeenAt *domain.Event
	attributeSeenAt := make(map[string]*domain.Event)

	observe := func(key, value string, event *domain.Event) {
		if value == "" {
			return
		}
		if prev, ok := attributeSeenAt[key]; ok && !event.After(prev) {
			return
		}
		attributeSeenAt[key] = event
		stats.LastSeenAttributes[key] = value
	}

	for _, event := range events {
		if event.VisitorID != visitorID {
			continue
		}
		stats.TotalEvents++
		stats.EventBreakdown[event.EventName]++

		if event.Device != "" && (deviceSeenAt == nil || event.After(deviceSeenAt)) {
			deviceSeenAt = event
			stats.LastSeenDevice = event.Device
		}

		observe("url", event.URL, event)
		observe("referrer", event.Referrer, event)
		for key, value := range event.Metadata {
			observe(key, value, event)
		}
	}

	return stats
}

// TimeSeries buckets events by interval, newest bucket first, keeping at most MaxTimeSeriesBuckets
func TimeSeries(events []*domain.Event, interval domain.Interval) []domain.TimeSeriesBucket {
	if interval == "" {
		interval = domain.IntervalDay
	}

	type bucket struct {
		count    uint64
		visitors map[string]struct{}
	}

	buckets := make(map[time.Time]*bucket)
	for _, event := range events {
		start := Truncate(event.Timestamp, interval)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{visitors: make(map[string]struct{})}
			buckets[start] = b
		}
		b.count++
		b.visitors[event.VisitorID] = struct{}{}
	}

	series := make([]domain.TimeSeriesBucket, 0, len(buckets))
	for start, b := range buckets {
		series = append(series, domain.TimeSeriesBucket{
			BucketStart:    start,
			Count:          b.count,
			UniqueVisitors: uint64(len(b.visitors)),
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].BucketStart.After(series[j].BucketStart)
	})

	if len(series) > domain.MaxTimeSeriesBuckets {
		series = series[:domain.MaxTimeSeriesBuckets]
	}

	return series
}

// Breakdown counts events per value of dimension, most frequent first
func Breakdown(events []*domain.Event, dimension domain.Dimension) []domain.BreakdownEntry {
	counts := make(map[string]uint64)
	for _, event := range events {
		counts[orUnknown(attribute(event, dimension))]++
	}

	entries := make([]domain.BreakdownEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, domain.BreakdownEntry{Value: value, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})

	return entries
}

// Truncate returns the start of the interval containing t, in UTC.
// Weeks start on Monday.
func Truncate(t time.Time, interval domain.Interval) time.Time {
	t = t.UTC()
	switch interval {
	case domain.IntervalHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	case domain.IntervalWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func attribute(event *domain.Event, dimension domain.Dimension) string {
	switch dimension {
	case domain.DimensionDevice:
		return event.Device
	case domain.DimensionURL:
		return event.URL
	case domain.DimensionBrowser:
		return event.Metadata["browser"]
	default:
		return ""
	}
}

func orUnknown(value string) string {
	if value == "" {
		return domain.UnknownAttributeValue
	}
	return value
}
