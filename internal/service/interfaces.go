package service

import (
	"context"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
)

// AnalyticsServicer defines the interface for analytics service operations.
// Every operation is scoped to exactly one application.
type AnalyticsServicer interface {
	Ingest(ctx context.Context, applicationID string, req *dto.CollectEventRequest) (string, error)
	IngestBulk(ctx context.Context, applicationID string, reqs []dto.CollectEventRequest) ([]string, []string, error)
	EventSummary(ctx context.Context, applicationID, eventName string, timeRange domain.TimeRange) (*domain.EventSummary, error)
	UserStats(ctx context.Context, applicationID, visitorID string) (*domain.VisitorStats, error)
	TimeSeries(ctx context.Context, applicationID, eventName string, timeRange domain.TimeRange, interval domain.Interval) ([]domain.TimeSeriesBucket, error)
	Breakdown(ctx context.Context, applicationID string, dimension domain.Dimension, timeRange domain.TimeRange) ([]domain.BreakdownEntry, error)
	Health(ctx context.Context) (bool, map[string]string)
}
