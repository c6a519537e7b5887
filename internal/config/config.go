package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// DefaultSpannerDatabase points at the local emulator database.
const DefaultSpannerDatabase = "projects/test-project/instances/dev-instance/databases/pricing-db"

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv          string
	SpannerDatabase string
	HTTPPort        string
	GRPCPort        string
	RedisURL        string
	CatalogCacheTTL time.Duration
	LogLevel        string
	LogFormat       string
	MetricsNS       string

	OTelExporter      string
	OTelEndpoint      string
	OTelServiceName   string
	OTelSamplingRatio float64

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:            valueOrDefault(k.String("APP_ENV"), "development"),
		SpannerDatabase:   strings.TrimSpace(k.String("SPANNER_DATABASE")),
		HTTPPort:          valueOrDefault(k.String("HTTP_PORT"), "8080"),
		GRPCPort:          valueOrDefault(k.String("GRPC_PORT"), "9090"),
		RedisURL:          strings.TrimSpace(k.String("REDIS_URL")),
		CatalogCacheTTL:   parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		LogLevel:          valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:         valueOrDefault(k.String("LOG_FORMAT"), "json"),
		MetricsNS:         valueOrDefault(k.String("METRICS_NAMESPACE"), "pricing"),
		OTelExporter:      valueOrDefault(k.String("OTEL_EXPORTER"), "none"),
		OTelEndpoint:      strings.TrimSpace(k.String("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTelServiceName:   valueOrDefault(k.String("OTEL_SERVICE_NAME"), "pricing-service"),
		OTelSamplingRatio: parseRatio(k.String("OTEL_SAMPLING_RATIO"), 1),
		ShutdownTimeout:   parseDuration(k.String("SHUTDOWN_TIMEOUT"), "15s"),
	}

	if cfg.SpannerDatabase == "" {
		if cfg.AppEnv == "production" {
			return nil, errors.New("SPANNER_DATABASE is required")
		}
		cfg.SpannerDatabase = DefaultSpannerDatabase
	}
	if cfg.OTelExporter == "otlp" && cfg.OTelEndpoint == "" {
		return nil, errors.New("OTEL_EXPORTER_OTLP_ENDPOINT is required when OTEL_EXPORTER=otlp")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	return listenAddr(c.HTTPPort, "8080")
}

// GRPCAddr returns the address the gRPC server should bind to.
func (c *Config) GRPCAddr() string {
	return listenAddr(c.GRPCPort, "9090")
}

// CacheEnabled reports whether the catalog read cache should be wired.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.CatalogCacheTTL > 0
}

func listenAddr(port, fallback string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = fallback
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseRatio(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}
	return v
}
