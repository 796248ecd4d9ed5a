package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Postgres drivers.
const (
	DriverPG  = "pgdriver"
	DriverPGX = "pgx"
)

// Config struct to hold the configuration settings
type Config struct {
	Source        SourceConfig           `yaml:"source"`
	Postgres      PostgresConfig         `yaml:"postgres"`
	Redis         RedisConfig            `yaml:"redis"`
	NATS          NATSConfig             `yaml:"nats"`
	HTTP          HTTPConfig             `yaml:"http"`
	Scoring       listdomain.ScorePolicy `yaml:"scoring"`
	Observability ObservabilityConfig    `yaml:"observability"`
}

// SourceConfig selects and tunes the level data source.
type SourceConfig struct {
	Kind        string        `yaml:"kind" env:"DEMONLIST_SOURCE"`
	Dir         string        `yaml:"dir" env:"DATA_DIR"`
	BaseURL     string        `yaml:"base_url" env:"DATA_BASE_URL"`
	Manifest    string        `yaml:"manifest" env:"DATA_MANIFEST"`
	Concurrency int           `yaml:"concurrency" env:"FETCH_CONCURRENCY"`
	Timeout     time.Duration `yaml:"timeout" env:"FETCH_TIMEOUT"`
	RateLimit   float64       `yaml:"rate_limit" env:"FETCH_RATE_LIMIT"`
	Burst       int           `yaml:"burst" env:"FETCH_BURST"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN    string `yaml:"dsn" env:"DATABASE_URL"`
	Driver string `yaml:"driver" env:"DATABASE_DRIVER"`
}

// RedisConfig holds the level cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	Prefix   string        `yaml:"prefix" env:"REDIS_PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL"`
}

// NATSConfig holds NATS configuration. An empty URL disables request/reply.
type NATSConfig struct {
	URL           string `yaml:"url" env:"NATS_URL"`
	SubjectPrefix string `yaml:"subject_prefix" env:"NATS_SUBJECT_PREFIX"`
	QueueGroup    string `yaml:"queue_group" env:"NATS_QUEUE_GROUP"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      float64       `yaml:"rate_limit" env:"HTTP_RATE_LIMIT"`
	Burst          int           `yaml:"burst" env:"HTTP_BURST"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address" env:"METRICS_ADDRESS"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string `yaml:"log_format" env:"LOG_FORMAT"`
	Environment    string `yaml:"environment" env:"ENV"`

	// TracingEndpoint is an OTLP/HTTP collector URL. Empty keeps spans in-process.
	ServiceName      string  `yaml:"service_name" env:"SERVICE_NAME"`
	TracingEndpoint  string  `yaml:"tracing_endpoint" env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	TraceSampleRatio float64 `yaml:"trace_sample_ratio" env:"TRACE_SAMPLE_RATIO"`
}

// LoadConfig loads the configuration from a YAML file, applies environment
// overrides and defaults, and validates the result. A missing file falls
// back to environment variables alone.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loadConfigFromEnv()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return finish(&cfg)
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = SourceFile
	}
	if c.Source.Dir == "" {
		c.Source.Dir = "data"
	}
	if c.Source.Manifest == "" {
		c.Source.Manifest = "_list.json"
	}
	if c.Source.Concurrency <= 0 {
		c.Source.Concurrency = 8
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Source.Burst <= 0 {
		c.Source.Burst = c.Source.Concurrency
	}

	if c.Postgres.Driver == "" {
		c.Postgres.Driver = DriverPG
	}

	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "demonlist"
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = 5 * time.Minute
	}

	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "demonlist"
	}
	if c.NATS.QueueGroup == "" {
		c.NATS.QueueGroup = "demonlist"
	}

	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 10
	}
	if c.HTTP.Burst <= 0 {
		c.HTTP.Burst = 20
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}

	defaults := listdomain.DefaultScorePolicy()
	if c.Scoring.MaxPoints == 0 {
		c.Scoring.MaxPoints = defaults.MaxPoints
	}
	if c.Scoring.DecayScale == 0 {
		c.Scoring.DecayScale = defaults.DecayScale
	}
	if c.Scoring.DecayExponent == 0 {
		c.Scoring.DecayExponent = defaults.DecayExponent
	}
	if c.Scoring.PartialFactor == 0 {
		c.Scoring.PartialFactor = defaults.PartialFactor
	}

	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Observability.LogFormat == "" {
		c.Observability.LogFormat = "json"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "demonlist"
	}
	if c.Observability.TraceSampleRatio == 0 {
		c.Observability.TraceSampleRatio = 1
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Dir == "" {
			errs = append(errs, errors.New("source.dir is required for the file source"))
		}
	case SourceHTTP:
		if c.Source.BaseURL == "" {
			errs = append(errs, errors.New("source.base_url is required for the http source"))
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("postgres.dsn is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.kind %q", c.Source.Kind))
	}

	switch c.Postgres.Driver {
	case DriverPG, DriverPGX:
	default:
		errs = append(errs, fmt.Errorf("unknown postgres.driver %q", c.Postgres.Driver))
	}

	if r := c.Observability.TraceSampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("observability.trace_sample_ratio %v must be in [0, 1]", r))
	}

	if err := c.Scoring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring: %w", err))
	}

	return errors.Join(errs...)
}
