package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverClickHouse = "clickhouse"
	StoreDriverMemory     = "memory"
)

// MinCacheTTL is the smallest expiry the cache stores can represent
const MinCacheTTL = time.Millisecond

type Config struct {
	Service    Service    `envconfig:"SERVICE"`
	Store      Store      `envconfig:"STORE"`
	ClickHouse ClickHouse `envconfig:"CLICKHOUSE"`
	SQS        SQS        `envconfig:"SQS"`
	Valkey     Valkey     `envconfig:"VALKEY"`
	Cache      Cache      `envconfig:"CACHE"`
	Identity   Identity   `envconfig:"IDENTITY"`
	Ingest     Ingest     `envconfig:"INGEST"`
	Consumer   Consumer   `envconfig:"CONSUMER"`
}

type Service struct {
	Environment string `envconfig:"ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

type Store struct {
	Driver  string        `envconfig:"DRIVER" default:"clickhouse"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

type ClickHouse struct {
	Host            string `envconfig:"HOST"`
	Port            string `envconfig:"PORT" default:"9000"`
	Database        string `envconfig:"DB" default:"analytics"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
}

type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL"`
	Region   string `envconfig:"REGION" default:"eu-central-1"`
}

type Valkey struct {
	Enabled  bool   `envconfig:"ENABLED" default:"true"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

type Cache struct {
	Timeout         time.Duration `envconfig:"TIMEOUT" default:"500ms"`
	SummaryTTL      time.Duration `envconfig:"SUMMARY_TTL" default:"5m"`
	VisitorStatsTTL time.Duration `envconfig:"VISITOR_TTL" default:"10m"`
}

type Identity struct {
	Driver string `envconfig:"DRIVER" default:"postgres"`
	DSN    string `envconfig:"DSN" required:"true"`
}

type Ingest struct {
	MaxFutureSkew time.Duration `envconfig:"MAX_FUTURE_SKEW" default:"1m"`
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverClickHouse:
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("CLICKHOUSE_HOST is required when STORE_DRIVER is %s", StoreDriverClickHouse)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s (supported: %s, %s)", c.Store.Driver, StoreDriverClickHouse, StoreDriverMemory)
	}

	if c.Store.Timeout <= 0 || c.Cache.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT and CACHE_TIMEOUT must be positive")
	}

	if c.Cache.SummaryTTL < MinCacheTTL || c.Cache.VisitorStatsTTL < MinCacheTTL {
		return fmt.Errorf("CACHE_SUMMARY_TTL and CACHE_VISITOR_TTL must be at least %s", MinCacheTTL)
	}

	if c.Consumer.BatchSizeMax <= 0 || c.Consumer.BatchTimeoutSec <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_SIZE_MAX and CONSUMER_BATCH_TIMEOUT_SEC must be positive")
	}

	return nil
}
