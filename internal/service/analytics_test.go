package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository/memory"
)

const testApp = "app_1"

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// MockQueuePublisher is a mock implementation of queue.QueuePublisher
type MockQueuePublisher struct {
	mock.Mock
}

func (m *MockQueuePublisher) PublishEvent(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEventStore is a mock implementation of repository.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Append(ctx context.Context, event *domain.Event) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockEventStore) AppendBatch(ctx context.Context, events []*domain.Event) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockEventStore) Query(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventStore) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// brokenCache fails every operation
type brokenCache struct{}

var errCacheDown = errors.New("connection refused")

func (brokenCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}

func (brokenCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errCacheDown
}

func (brokenCache) Invalidate(ctx context.Context, keys ...string) error {
	return errCacheDown
}

func (brokenCache) Ping(ctx context.Context) error {
	return errCacheDown
}

func (brokenCache) Close() error {
	return nil
}

type fixture struct {
	service *AnalyticsService
	store   *memory.Repository
	cache   *cache.MemoryStore
	clock   *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	store := memory.NewRepository(zap.NewNop())
	cacheStore := cache.NewMemoryStore(clock)
	svc := NewAnalyticsService(store, cacheStore, nil, Options{Clock: clock}, zap.NewNop())
	return &fixture{service: svc, store: store, cache: cacheStore, clock: clock}
}

func pageView(visitor, device string) *dto.CollectEventRequest {
	return &dto.CollectEventRequest{
		EventName: "page_view",
		URL:       "https://example.com/",
		Device:    device,
		VisitorID: visitor,
	}
}

func TestAnalyticsService_Ingest_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ts := testNow.Add(-time.Hour)
	req := &dto.CollectEventRequest{
		EventName: " page_view ",
		URL:       "https://example.com/pricing",
		Referrer:  "https://google.com",
		Device:    "mobile",
		VisitorID: "203.0.113.7",
		Timestamp: &ts,
		Metadata:  map[string]interface{}{"browser": "firefox", "screen": 1080, "ignored": nil},
	}

	eventID, err := f.service.Ingest(ctx, testApp, req)
	require.NoError(t, err)
	assert.NotEmpty(t, eventID)

	events, err := f.store.Query(ctx, repository.EventFilter{ApplicationID: testApp})
	require.NoError(t, err)
	require.Len(t, events, 1)

	stored := events[0]
	assert.Equal(t, eventID, stored.EventID)
	assert.Equal(t, "page_view", stored.EventName)
	assert.Equal(t, ts, stored.Timestamp)
	assert.Equal(t, map[string]string{"browser": "firefox", "screen": "1080"}, stored.Metadata)
}

func TestAnalyticsService_Ingest_DefaultsTimestampToNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, testApp, pageView("v1", "desktop"))
	require.NoError(t, err)

	events, err := f.store.Query(ctx, repository.EventFilter{ApplicationID: testApp})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, testNow, events[0].Timestamp)
}

func TestAnalyticsService_Ingest_ValidationErrors(t *testing.T) {
	future := testNow.Add(time.Hour)

	tests := []struct {
		name    string
		req     *dto.CollectEventRequest
		message string
	}{
		{"missing event name", &dto.CollectEventRequest{EventName: "  ", URL: "https://example.com"}, "event_name is required"},
		{"missing url", &dto.CollectEventRequest{EventName: "click"}, "url is required"},
		{"future timestamp", &dto.CollectEventRequest{EventName: "click", URL: "https://example.com", Timestamp: &future}, "timestamp cannot be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockEventStore)
			svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil,
				Options{Clock: clockwork.NewFakeClockAt(testNow)}, zap.NewNop())

			eventID, err := svc.Ingest(context.Background(), testApp, tt.req)

			assert.Empty(t, eventID)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.message)
			mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestAnalyticsService_Ingest_AllowsClockSkew(t *testing.T) {
	f := newFixture(t)
	ts := testNow.Add(30 * time.Second)
	req := pageView("v1", "desktop")
	req.Timestamp = &ts

	_, err := f.service.Ingest(context.Background(), testApp, req)
	assert.NoError(t, err)
}

func TestAnalyticsService_Ingest_StoreFailure(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Append", mock.Anything, mock.Anything).Return("", errors.New("clickhouse: connection reset"))

	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())

	eventID, err := svc.Ingest(context.Background(), testApp, pageView("v1", "mobile"))

	assert.Empty(t, eventID)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	mockStore.AssertExpectations(t)
}

func TestAnalyticsService_Ingest_InvalidationFailureIsSwallowed(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Append", mock.Anything, mock.Anything).Return("evt-1", nil)

	svc := NewAnalyticsService(mockStore, brokenCache{}, nil, Options{}, zap.NewNop())

	eventID, err := svc.Ingest(context.Background(), testApp, pageView("v1", "mobile"))

	assert.NoError(t, err)
	assert.Equal(t, "evt-1", eventID)
	mockStore.AssertExpectations(t)
}

func TestAnalyticsService_Ingest_InvalidatesUndatedSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, testApp, pageView("v1", "mobile"))
	require.NoError(t, err)

	summary, err := f.service.EventSummary(ctx, testApp, "page_view", domain.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Count)

	_, err = f.service.Ingest(ctx, testApp, pageView("v2", "desktop"))
	require.NoError(t, err)

	summary, err = f.service.EventSummary(ctx, testApp, "page_view", domain.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Count)
	assert.Equal(t, uint64(2), summary.UniqueVisitors)
	assert.Equal(t, map[string]uint64{"mobile": 1, "desktop": 1}, summary.DeviceHistogram)
}

func TestAnalyticsService_Ingest_InvalidatesVisitorStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, testApp, pageView("v1", "mobile"))
	require.NoError(t, err)

	stats, err := f.service.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.TotalEvents)

	f.clock.Advance(time.Second)
	req := pageView("v1", "tablet")
	req.EventName = "signup"
	_, err = f.service.Ingest(ctx, testApp, req)
	require.NoError(t, err)

	stats, err = f.service.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.TotalEvents)
	assert.Equal(t, map[string]uint64{"page_view": 1, "signup": 1}, stats.EventBreakdown)
	assert.Equal(t, "tablet", stats.LastSeenDevice)
}

func TestAnalyticsService_EventSummary_DatedSummaryServedFromCacheUntilExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start := testNow.Add(-24 * time.Hour)
	end := testNow.Add(24 * time.Hour)
	dated := domain.TimeRange{Start: &start, End: &end}

	_, err := f.service.Ingest(ctx, testApp, pageView("v1", "mobile"))
	require.NoError(t, err)

	summary, err := f.service.EventSummary(ctx, testApp, "page_view", dated)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Count)

	_, err = f.service.Ingest(ctx, testApp, pageView("v2", "mobile"))
	require.NoError(t, err)

	// Dated keys are not invalidated on ingestion.
	summary, err = f.service.EventSummary(ctx, testApp, "page_view", dated)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Count)

	f.clock.Advance(cache.DefaultSummaryTTL + time.Second)

	summary, err = f.service.EventSummary(ctx, testApp, "page_view", dated)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Count)
}

func TestAnalyticsService_EventSummary_CacheHitSkipsStore(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, repository.EventFilter{ApplicationID: testApp, EventName: "click"}).
		Return([]*domain.Event{
			{EventID: "e1", ApplicationID: testApp, EventName: "click", VisitorID: "v1", Device: "mobile", Timestamp: testNow},
		}, nil).Once()

	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())
	ctx := context.Background()

	first, err := svc.EventSummary(ctx, testApp, "click", domain.TimeRange{})
	require.NoError(t, err)

	second, err := svc.EventSummary(ctx, testApp, "click", domain.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockStore.AssertNumberOfCalls(t, "Query", 1)
}

func TestAnalyticsService_EventSummary_CachesZeroResult(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, mock.Anything).Return([]*domain.Event{}, nil).Once()

	cacheStore := cache.NewMemoryStore(nil)
	svc := NewAnalyticsService(mockStore, cacheStore, nil, Options{}, zap.NewNop())
	ctx := context.Background()

	summary, err := svc.EventSummary(ctx, testApp, "never_sent", domain.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), summary.Count)
	assert.Equal(t, uint64(0), summary.UniqueVisitors)

	_, err = svc.EventSummary(ctx, testApp, "never_sent", domain.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, 1, cacheStore.Len())
	mockStore.AssertNumberOfCalls(t, "Query", 1)
}

func TestAnalyticsService_EventSummary_CacheFailureDegradesToMiss(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, mock.Anything).
		Return([]*domain.Event{
			{EventID: "e1", ApplicationID: testApp, EventName: "click", VisitorID: "v1", Timestamp: testNow},
		}, nil)

	svc := NewAnalyticsService(mockStore, brokenCache{}, nil, Options{}, zap.NewNop())

	summary, err := svc.EventSummary(context.Background(), testApp, "click", domain.TimeRange{})

	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Count)
	assert.Equal(t, map[string]uint64{domain.UnknownAttributeValue: 1}, summary.DeviceHistogram)
	mockStore.AssertNumberOfCalls(t, "Query", 1)
}

func TestAnalyticsService_EventSummary_CorruptEntryIsRecomputed(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, mock.Anything).Return([]*domain.Event{}, nil)

	cacheStore := cache.NewMemoryStore(nil)
	key := cache.SummaryKey(testApp, "click", domain.TimeRange{})
	require.NoError(t, cacheStore.Put(context.Background(), key, []byte("not json"), time.Minute))

	svc := NewAnalyticsService(mockStore, cacheStore, nil, Options{}, zap.NewNop())

	summary, err := svc.EventSummary(context.Background(), testApp, "click", domain.TimeRange{})

	require.NoError(t, err)
	assert.Equal(t, "click", summary.EventName)
	mockStore.AssertNumberOfCalls(t, "Query", 1)
}

func TestAnalyticsService_EventSummary_StoreFailure(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	cacheStore := cache.NewMemoryStore(nil)
	svc := NewAnalyticsService(mockStore, cacheStore, nil, Options{}, zap.NewNop())

	summary, err := svc.EventSummary(context.Background(), testApp, "click", domain.TimeRange{})

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, cacheStore.Len())
}

func TestAnalyticsService_Breakdown_StoreRejectsFilter(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
	}{
		{"missing application", repository.ErrMissingApplication},
		{"inverted range", domain.InvalidArgument("start date must be before or equal to end date")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockEventStore)
			mockStore.On("Query", mock.Anything, mock.Anything).Return(nil, tt.storeErr)
			svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())

			entries, err := svc.Breakdown(context.Background(), "", domain.DimensionDevice, domain.TimeRange{})

			assert.Nil(t, entries)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.NotErrorIs(t, err, domain.ErrDependencyUnavailable)
		})
	}
}

func TestAnalyticsService_EventSummary_MissingApplicationIsNotCached(t *testing.T) {
	f := newFixture(t)

	summary, err := f.service.EventSummary(context.Background(), "", "click", domain.TimeRange{})

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 0, f.cache.Len())
}

func TestOptions_WithDefaults_FillsPolicyPerField(t *testing.T) {
	opts := Options{Policy: cache.Policy{SummaryTTL: time.Minute}}.withDefaults()

	assert.Equal(t, time.Minute, opts.Policy.SummaryTTL)
	assert.Equal(t, cache.DefaultVisitorStatsTTL, opts.Policy.VisitorStatsTTL)

	opts = Options{Policy: cache.Policy{VisitorStatsTTL: 30 * time.Second}}.withDefaults()

	assert.Equal(t, cache.DefaultSummaryTTL, opts.Policy.SummaryTTL)
	assert.Equal(t, 30*time.Second, opts.Policy.VisitorStatsTTL)
}

func TestAnalyticsService_EventSummary_CustomSummaryTTLKeepsVisitorDefault(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, mock.Anything).Return([]*domain.Event{}, nil)

	clock := clockwork.NewFakeClockAt(testNow)
	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(clock), nil,
		Options{Clock: clock, Policy: cache.Policy{SummaryTTL: time.Minute}}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.EventSummary(ctx, testApp, "click", domain.TimeRange{})
	require.NoError(t, err)
	_, err = svc.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	mockStore.AssertNumberOfCalls(t, "Query", 2)

	clock.Advance(2 * time.Minute)

	_, err = svc.EventSummary(ctx, testApp, "click", domain.TimeRange{})
	require.NoError(t, err)
	_, err = svc.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	mockStore.AssertNumberOfCalls(t, "Query", 3)
}

func TestAnalyticsService_EventSummary_InvalidArguments(t *testing.T) {
	mockStore := new(MockEventStore)
	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.EventSummary(ctx, testApp, "", domain.TimeRange{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	start := testNow
	end := testNow.Add(-time.Hour)
	_, err = svc.EventSummary(ctx, testApp, "click", domain.TimeRange{Start: &start, End: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	mockStore.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestAnalyticsService_UserStats_UnknownVisitor(t *testing.T) {
	f := newFixture(t)

	stats, err := f.service.UserStats(context.Background(), testApp, "nobody")

	require.NoError(t, err)
	assert.Equal(t, "nobody", stats.VisitorID)
	assert.Equal(t, uint64(0), stats.TotalEvents)
	assert.Empty(t, stats.EventBreakdown)
}

func TestAnalyticsService_UserStats_ExpiresAfterTTL(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, repository.EventFilter{ApplicationID: testApp, VisitorID: "v1"}).
		Return([]*domain.Event{}, nil)

	clock := clockwork.NewFakeClockAt(testNow)
	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(clock), nil, Options{Clock: clock}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)

	clock.Advance(cache.DefaultSummaryTTL + time.Second)
	_, err = svc.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	mockStore.AssertNumberOfCalls(t, "Query", 1)

	clock.Advance(cache.DefaultVisitorStatsTTL)
	_, err = svc.UserStats(ctx, testApp, "v1")
	require.NoError(t, err)
	mockStore.AssertNumberOfCalls(t, "Query", 2)
}

func TestAnalyticsService_UserStats_MissingVisitor(t *testing.T) {
	f := newFixture(t)

	stats, err := f.service.UserStats(context.Background(), testApp, " ")

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAnalyticsService_TimeSeries_NotCached(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Query", mock.Anything, repository.EventFilter{ApplicationID: testApp, EventName: "click"}).
		Return([]*domain.Event{
			{EventID: "e1", ApplicationID: testApp, EventName: "click", VisitorID: "v1", Timestamp: testNow},
			{EventID: "e2", ApplicationID: testApp, EventName: "click", VisitorID: "v2", Timestamp: testNow.Add(-24 * time.Hour)},
		}, nil)

	cacheStore := cache.NewMemoryStore(nil)
	svc := NewAnalyticsService(mockStore, cacheStore, nil, Options{}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		buckets, err := svc.TimeSeries(ctx, testApp, "click", domain.TimeRange{}, "")
		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.True(t, buckets[0].BucketStart.After(buckets[1].BucketStart))
	}

	assert.Equal(t, 0, cacheStore.Len())
	mockStore.AssertNumberOfCalls(t, "Query", 2)
}

func TestAnalyticsService_Breakdown_ByDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, device := range []string{"mobile", "mobile", "desktop", ""} {
		_, err := f.service.Ingest(ctx, testApp, pageView("v1", device))
		require.NoError(t, err)
	}

	entries, err := f.service.Breakdown(ctx, testApp, domain.DimensionDevice, domain.TimeRange{})

	require.NoError(t, err)
	assert.Equal(t, []domain.BreakdownEntry{
		{Value: "mobile", Count: 2},
		{Value: "desktop", Count: 1},
		{Value: domain.UnknownAttributeValue, Count: 1},
	}, entries)
	assert.Equal(t, 0, f.cache.Len())
}

func TestAnalyticsService_QueriesAreScopedToApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, "app_a", pageView("v1", "mobile"))
	require.NoError(t, err)
	_, err = f.service.Ingest(ctx, "app_b", pageView("v1", "mobile"))
	require.NoError(t, err)
	_, err = f.service.Ingest(ctx, "app_b", pageView("v2", "mobile"))
	require.NoError(t, err)

	summaryA, err := f.service.EventSummary(ctx, "app_a", "page_view", domain.TimeRange{})
	require.NoError(t, err)
	summaryB, err := f.service.EventSummary(ctx, "app_b", "page_view", domain.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summaryA.Count)
	assert.Equal(t, uint64(2), summaryB.Count)
}

func TestAnalyticsService_IngestBulk_PublishesValidEvents(t *testing.T) {
	mockStore := new(MockEventStore)
	mockPublisher := new(MockQueuePublisher)
	mockPublisher.On("PublishEvent", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(nil).Times(2)

	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), mockPublisher,
		Options{Clock: clockwork.NewFakeClockAt(testNow)}, zap.NewNop())

	future := testNow.Add(time.Hour)
	reqs := []dto.CollectEventRequest{
		*pageView("v1", "mobile"),
		{EventName: "click", URL: "https://example.com", Timestamp: &future},
		*pageView("v2", "desktop"),
	}

	eventIDs, errs, err := svc.IngestBulk(context.Background(), testApp, reqs)

	assert.NoError(t, err)
	assert.Len(t, eventIDs, 2)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "event 1:")
	assert.Contains(t, errs[0], "timestamp cannot be in the future")
	mockPublisher.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestAnalyticsService_IngestBulk_PublishFailure(t *testing.T) {
	mockPublisher := new(MockQueuePublisher)
	mockPublisher.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("queue publish error"))

	svc := NewAnalyticsService(new(MockEventStore), cache.NewMemoryStore(nil), mockPublisher, Options{}, zap.NewNop())

	eventIDs, errs, err := svc.IngestBulk(context.Background(), testApp, []dto.CollectEventRequest{*pageView("v1", "mobile")})

	assert.NoError(t, err)
	assert.Empty(t, eventIDs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "failed to publish event to queue")
}

func TestAnalyticsService_IngestBulk_SynchronousWithoutPublisher(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.EventSummary(ctx, testApp, "page_view", domain.TimeRange{})
	require.NoError(t, err)

	eventIDs, errs, err := f.service.IngestBulk(ctx, testApp, []dto.CollectEventRequest{
		*pageView("v1", "mobile"),
		*pageView("v2", "mobile"),
	})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Len(t, eventIDs, 2)

	summary, err := f.service.EventSummary(ctx, testApp, "page_view", domain.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Count)
}

func TestAnalyticsService_IngestBulk_AllInvalid(t *testing.T) {
	mockStore := new(MockEventStore)
	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())

	eventIDs, errs, err := svc.IngestBulk(context.Background(), testApp, []dto.CollectEventRequest{
		{EventName: "click"},
		{URL: "https://example.com"},
	})

	assert.NoError(t, err)
	assert.Empty(t, eventIDs)
	assert.Len(t, errs, 2)
	mockStore.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestAnalyticsService_Health(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Ping", mock.Anything).Return(nil)

	svc := NewAnalyticsService(mockStore, brokenCache{}, nil, Options{}, zap.NewNop())

	healthy, report := svc.Health(context.Background())

	assert.True(t, healthy)
	assert.Equal(t, "ok", report["event_store"])
	assert.Contains(t, report["cache"], "degraded")
}

func TestAnalyticsService_Health_StoreDown(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("Ping", mock.Anything).Return(errors.New("dial tcp: connection refused"))

	svc := NewAnalyticsService(mockStore, cache.NewMemoryStore(nil), nil, Options{}, zap.NewNop())

	healthy, report := svc.Health(context.Background())

	assert.False(t, healthy)
	assert.Equal(t, "ok", report["cache"])
	assert.Contains(t, report["event_store"], "connection refused")
}
