package clickhouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

const eventColumns = "event_id, application_id, event_name, url, referrer, device, visitor_id, timestamp, metadata"

// Repository implements EventStore for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the events table.
// ReplacingMergeTree collapses redelivered events that share an event_id.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		event_id String,
		application_id LowCardinality(String),
		event_name LowCardinality(String),
		url String,
		referrer String,
		device LowCardinality(String),
		visitor_id String,
		timestamp DateTime64(3, 'UTC'),
		metadata Map(String, String),
		ingested_at DateTime64(3, 'UTC') DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(ingested_at)
	PARTITION BY toYYYYMM(timestamp)
	ORDER BY (application_id, event_name, timestamp, event_id)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// Append inserts a single event; it returns once ClickHouse acknowledged the insert
func (r *Repository) Append(ctx context.Context, event *domain.Event) (string, error) {
	if _, err := r.AppendBatch(ctx, []*domain.Event{event}); err != nil {
		return "", err
	}
	return event.EventID, nil
}

// AppendBatch inserts a batch of events into ClickHouse
func (r *Repository) AppendBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO events ("+eventColumns+")")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, event := range events {
		if event.ApplicationID == "" {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append event %s: %w", event.EventID, repository.ErrMissingApplication)
		}

		metadata := event.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}

		err := batch.Append(
			event.EventID,
			event.ApplicationID,
			event.EventName,
			event.URL,
			event.Referrer,
			event.Device,
			event.VisitorID,
			event.Timestamp.UTC(),
			metadata,
		)
		if err != nil {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append event to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return len(events), nil
}

// Query retrieves the events matching filter, oldest first
func (r *Repository) Query(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args := buildEventQuery(filter)

	rows, err := r.client.Conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close event rows", zap.Error(err))
		}
	}(rows)

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.EventID,
			&event.ApplicationID,
			&event.EventName,
			&event.URL,
			&event.Referrer,
			&event.Device,
			&event.VisitorID,
			&event.Timestamp,
			&event.Metadata,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// buildEventQuery turns a typed filter into a parameterised SELECT; values never reach the SQL text
func buildEventQuery(filter repository.EventFilter) (string, []any) {
	conditions := []string{"application_id = ?"}
	args := []any{filter.ApplicationID}

	if filter.EventName != "" {
		conditions = append(conditions, "event_name = ?")
		args = append(args, filter.EventName)
	}
	if filter.VisitorID != "" {
		conditions = append(conditions, "visitor_id = ?")
		args = append(args, filter.VisitorID)
	}
	if filter.TimeRange.Start != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.TimeRange.Start.UTC())
	}
	if filter.TimeRange.End != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.TimeRange.End.UTC())
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events FINAL
		WHERE %s
		ORDER BY timestamp ASC, event_id ASC
	`, eventColumns, strings.Join(conditions, " AND "))

	return query, args
}
