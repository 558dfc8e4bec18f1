package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sirikagonuguntla/website-analytics-api/docs"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/identity"
	"github.com/sirikagonuguntla/website-analytics-api/internal/service"
)

const defaultIdentityTimeout = 2 * time.Second

type Handler struct {
	analyticsService service.AnalyticsServicer
	identity         identity.Provider
	clock            clockwork.Clock
	identityTimeout  time.Duration
	router           *gin.Engine
	log              *zap.Logger
}

// Option customises a Handler
type Option func(*Handler)

// WithClock sets the clock used to check application expiry
func WithClock(clock clockwork.Clock) Option {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithIdentityTimeout bounds every identity provider call
func WithIdentityTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		if timeout > 0 {
			h.identityTimeout = timeout
		}
	}
}

func NewHandler(analyticsService service.AnalyticsServicer, provider identity.Provider, log *zap.Logger, opts ...Option) *Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	h := &Handler{
		analyticsService: analyticsService,
		identity:         provider,
		clock:            clockwork.NewRealClock(),
		identityTimeout:  defaultIdentityTimeout,
		router:           router,
		log:              log,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := h.router.Group("/api", h.authenticate)

	collect := api.Group("/collect")
	collect.POST("", h.collectEvent)
	collect.POST("/bulk", h.collectEventsBulk)

	analytics := api.Group("/analytics")
	analytics.GET("/event-summary", h.eventSummary)
	analytics.GET("/user-stats", h.userStats)
	analytics.GET("/time-series", h.timeSeries)
	analytics.GET("/breakdown-by-device", h.breakdown(domain.DimensionDevice))
	analytics.GET("/breakdown-by-browser", h.breakdown(domain.DimensionBrowser))
	analytics.GET("/breakdown-by-url", h.breakdown(domain.DimensionURL))
}

// requestLogger logs one line per request once it has been served
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if app, ok := c.Get(applicationContextKey); ok {
			fields = append(fields, zap.String("application_id", app.(*domain.Application).ApplicationID))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("Request failed", fields...)
			return
		}
		log.Debug("Request served", fields...)
	}
}
