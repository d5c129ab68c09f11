package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Upstream NDBC endpoints.
	NDBCBaseURL            string
	CurrentFetchTimeout    time.Duration
	HistoricalFetchTimeout time.Duration

	// Cache freshness windows. CurrentStaleCutoff is how long a station
	// missing from fresh data keeps its cached reading before being dropped.
	CurrentCacheTTL    time.Duration
	CurrentStaleCutoff time.Duration
	HistoricalCacheTTL time.Duration

	// Background cache-warming refresh.
	RefreshEnabled  bool
	RefreshInterval time.Duration

	// Cache store. Empty path selects the in-memory store.
	StorePath string

	// Optional snapshot publishing for downstream consumers.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment (and an optional .env file),
// applying defaults where unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env file: %v", err)
	}

	cfg := &Config{
		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		NDBCBaseURL: envOrDefault("NDBC_BASE_URL", "https://www.ndbc.noaa.gov"),

		StorePath: os.Getenv("CACHE_DB_PATH"),

		KafkaTopic: envOrDefault("KAFKA_SNAPSHOT_TOPIC", "station-snapshots"),
	}

	var err error
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CurrentFetchTimeout, err = durationEnv("CURRENT_FETCH_TIMEOUT", 4*time.Second); err != nil {
		return nil, err
	}
	if cfg.HistoricalFetchTimeout, err = durationEnv("HISTORICAL_FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CurrentCacheTTL, err = durationEnv("CURRENT_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CurrentStaleCutoff, err = durationEnv("CURRENT_STALE_CUTOFF", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HistoricalCacheTTL, err = durationEnv("HISTORICAL_CACHE_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = durationEnv("REFRESH_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}

	cfg.RefreshEnabled = boolEnv("REFRESH_ENABLED", true)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitAndTrim(origins)
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	cfg.KafkaEnabled = boolEnv("KAFKA_ENABLED", brokers != "")
	if brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.NDBCBaseURL == "" {
		return nil, errors.New("NDBC_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func boolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
