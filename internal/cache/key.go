package cache

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

const (
	keyPrefix = "analytics"

	// AllSentinel stands in for an absent optional parameter
	AllSentinel = "all"
)

// Key builds the canonical cache key for an aggregate.
// Parameters are sorted by name, so presentation order never changes the key,
// and empty values are replaced by AllSentinel.
func Key(applicationID string, kind domain.AggregateKind, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		value := params[name]
		if value == "" {
			value = AllSentinel
		}
		pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(value))
	}

	return strings.Join([]string{
		keyPrefix,
		url.QueryEscape(applicationID),
		string(kind),
		strings.Join(pairs, "|"),
	}, ":")
}

// SummaryKey is the key of an event summary over timeRange
func SummaryKey(applicationID, eventName string, timeRange domain.TimeRange) string {
	return Key(applicationID, domain.KindEventSummary, map[string]string{
		"event_name": eventName,
		"start":      formatBound(timeRange.Start),
		"end":        formatBound(timeRange.End),
	})
}

// VisitorStatsKey is the key of one visitor's stats
func VisitorStatsKey(applicationID, visitorID string) string {
	return Key(applicationID, domain.KindUserStats, map[string]string{
		"visitor_id": visitorID,
	})
}

// VisitorStatsUmbrellaKey is the application-wide visitor stats key.
// It is reserved: nothing is cached under it, but ingestion invalidates it along
// with the exact VisitorStatsKey, which is where per-visitor stats are cached.
func VisitorStatsUmbrellaKey(applicationID string) string {
	return Key(applicationID, domain.KindUserStats, nil)
}

// IngestionKeys lists the keys an event for (applicationID, eventName, visitorID) invalidates.
// Only the undated summary is targeted; dated summaries expire on their own.
func IngestionKeys(applicationID, eventName, visitorID string) []string {
	keys := []string{
		SummaryKey(applicationID, eventName, domain.TimeRange{}),
		VisitorStatsUmbrellaKey(applicationID),
	}
	if visitorID != "" {
		keys = append(keys, VisitorStatsKey(applicationID, visitorID))
	}
	return keys
}

func formatBound(t *time.Time) string {
	if t == nil {
		return AllSentinel
	}
	return t.UTC().Format(time.RFC3339Nano)
}
