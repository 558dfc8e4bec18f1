package cache

import (
	"time"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

const (
	DefaultSummaryTTL      = 5 * time.Minute
	DefaultVisitorStatsTTL = 10 * time.Minute
)

// Policy decides which aggregates are cached and for how long.
// Time series and breakdowns take arbitrary date ranges, so they are never cached.
type Policy struct {
	SummaryTTL      time.Duration
	VisitorStatsTTL time.Duration
}

// DefaultPolicy returns the standard time-to-live per aggregate kind
func DefaultPolicy() Policy {
	return Policy{
		SummaryTTL:      DefaultSummaryTTL,
		VisitorStatsTTL: DefaultVisitorStatsTTL,
	}
}

// TTL returns the time-to-live of kind and whether kind is cached at all
func (p Policy) TTL(kind domain.AggregateKind) (time.Duration, bool) {
	switch kind {
	case domain.KindEventSummary:
		return p.SummaryTTL, p.SummaryTTL > 0
	case domain.KindUserStats:
		return p.VisitorStatsTTL, p.VisitorStatsTTL > 0
	default:
		return 0, false
	}
}
