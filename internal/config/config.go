package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string
	DBAutoMigrate      bool

	LogFormat      string
	LogLevel       string
	MetricsEnabled bool
	TracingEnabled bool
	OTLPEndpoint   string
	ServiceName    string
	TraceSampler   float64

	CatalogCacheTTL time.Duration
	ReportCacheTTL  time.Duration
	IdempotencyTTL  time.Duration
	BodyLimitBytes  int64
	RateLimitSales  string
	CurrencyCode    string

	POSSessionTTL        time.Duration
	POSDefaultTaxPercent decimal.Decimal
	POSStoreURL          string
	POSStoreTimeout      time.Duration
	StoreBreakerMinReq   int
	StoreBreakerFailRate float64
	StoreBreakerOpenFor  time.Duration
	LowStockThreshold    int
	WorkerConcurrency    int
	ShutdownGracePeriod  time.Duration
}

// Load reads configuration from the process environment, after merging an
// optional .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	e := envReader{k: k}

	taxPct, err := decimal.NewFromString(e.str("POS_DEFAULT_TAX_PERCENT", "0"))
	if err != nil {
		return nil, fmt.Errorf("POS_DEFAULT_TAX_PERCENT: %w", err)
	}

	cfg := &Config{
		AppEnv:             e.str("APP_ENV", "development"),
		Port:               e.str("PORT", "8080"),
		DatabaseURL:        e.str("DATABASE_URL", ""),
		RedisURL:           e.str("REDIS_URL", ""),
		CORSAllowedOrigins: e.list("CORS_ALLOWED_ORIGINS"),
		DBAutoMigrate:      e.flag("DB_AUTO_MIGRATE", false),

		LogFormat:      e.str("OBS_LOG_FORMAT", "json"),
		LogLevel:       e.str("OBS_LOG_LEVEL", "info"),
		MetricsEnabled: e.flag("OBS_METRICS_ENABLED", true),
		TracingEnabled: e.flag("OBS_TRACING_ENABLED", false),
		OTLPEndpoint:   e.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:    e.str("OTEL_SERVICE_NAME", "backend-kasir"),
		TraceSampler:   e.number("OTEL_TRACES_SAMPLER_ARG", 1),

		CatalogCacheTTL: e.duration("CATALOG_CACHE_TTL", time.Minute),
		ReportCacheTTL:  e.duration("REPORT_CACHE_TTL", 5*time.Minute),
		IdempotencyTTL:  e.duration("IDEMPOTENCY_TTL", 24*time.Hour),
		BodyLimitBytes:  int64(e.integer("BODY_LIMIT_BYTES", 1<<20)),
		RateLimitSales:  e.str("RATE_LIMIT_SALES", "30-M"),
		CurrencyCode:    e.str("CURRENCY_CODE", "IDR"),

		POSSessionTTL:        e.duration("POS_SESSION_TTL", 12*time.Hour),
		POSDefaultTaxPercent: taxPct,
		POSStoreURL:          strings.TrimRight(e.str("POS_STORE_URL", ""), "/"),
		POSStoreTimeout:      e.duration("POS_STORE_TIMEOUT", 10*time.Second),
		StoreBreakerMinReq:   e.integer("CIRCUIT_STORE_MIN_REQ", 10),
		StoreBreakerFailRate: e.number("CIRCUIT_STORE_FAILURE_RATE", 0.5),
		StoreBreakerOpenFor:  e.duration("CIRCUIT_STORE_OPEN_FOR", 30*time.Second),
		LowStockThreshold:    e.integer("LOW_STOCK_THRESHOLD", 5),
		WorkerConcurrency:    e.integer("WORKER_CONCURRENCY", 10),
		ShutdownGracePeriod:  e.duration("SHUTDOWN_GRACE_PERIOD", 15*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseURL == "":
		return errors.New("DATABASE_URL is required")
	case c.RedisURL == "":
		return errors.New("REDIS_URL is required")
	case c.POSDefaultTaxPercent.IsNegative():
		return errors.New("POS_DEFAULT_TAX_PERCENT must not be negative")
	}
	return nil
}

// HTTPAddr returns the listen address for the API server.
func (c *Config) HTTPAddr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// RemoteStore reports whether POS checkout should go through the HTTP store client.
func (c *Config) RemoteStore() bool {
	return c.POSStoreURL != ""
}

// envReader reads typed values from koanf. Blank or unparsable values
// yield the supplied default.
type envReader struct {
	k *koanf.Koanf
}

func (e envReader) raw(key string) string {
	return strings.TrimSpace(e.k.String(key))
}

func (e envReader) str(key, def string) string {
	if v := e.raw(key); v != "" {
		return v
	}
	return def
}

func (e envReader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(e.raw(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.raw(key)); err == nil {
		return d
	}
	return def
}

func (e envReader) flag(key string, def bool) bool {
	switch strings.ToLower(e.raw(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func (e envReader) integer(key string, def int) int {
	if v, err := strconv.Atoi(e.raw(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) number(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(e.raw(key), 64); err == nil {
		return v
	}
	return def
}

// LoadForTests runs Load with the given variables set, restoring the previous
// environment afterwards. An empty value unsets the variable.
func LoadForTests(vars map[string]string) (*Config, error) {
	saved := make(map[string]string, len(vars))
	for key, value := range vars {
		saved[key] = os.Getenv(key)
		if err := setenv(key, value); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()

	var restoreErrs []error
	for key, value := range saved {
		if rerr := setenv(key, value); rerr != nil {
			restoreErrs = append(restoreErrs, fmt.Errorf("%s: %w", key, rerr))
		}
	}
	if err != nil {
		return nil, err
	}
	return cfg, errors.Join(restoreErrs...)
}

func setenv(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}
