package aggregate

import (
	"strings"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// ParseInterval validates an interval name; an empty name means day
func ParseInterval(raw string) (domain.Interval, error) {
	switch interval := domain.Interval(strings.ToLower(strings.TrimSpace(raw))); interval {
	case "":
		return domain.IntervalDay, nil
	case domain.IntervalHour, domain.IntervalDay, domain.IntervalWeek, domain.IntervalMonth:
		return interval, nil
	default:
		return "", domain.InvalidArgument("invalid interval: %s (supported: hour, day, week, month)", raw)
	}
}

// ParseDimension validates a breakdown dimension name
func ParseDimension(raw string) (domain.Dimension, error) {
	switch dimension := domain.Dimension(strings.ToLower(strings.TrimSpace(raw))); dimension {
	case domain.DimensionDevice, domain.DimensionBrowser, domain.DimensionURL:
		return dimension, nil
	default:
		return "", domain.InvalidArgument("invalid dimension: %s (supported: device, browser, url)", raw)
	}
}
