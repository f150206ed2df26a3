package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Sources SourcesConfig
	Refresh RefreshConfig
	DB      DatabaseConfig
	Catalog CatalogConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

// SourcesConfig points at the four external collaborators. RateLimit is
// requests/second per source.
type SourcesConfig struct {
	WeatherURL   string
	HazardURL    string
	ResourcesURL string
	PermitsURL   string
	RateLimit    float64
	MaxRetries   int
}

type RefreshConfig struct {
	Interval time.Duration
}

type DatabaseConfig struct {
	Path string
}

type CatalogConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Sources: SourcesConfig{
			WeatherURL:   getEnv("WEATHER_SOURCE_URL", "http://localhost:9001"),
			HazardURL:    getEnv("HAZARD_SOURCE_URL", "http://localhost:9002"),
			ResourcesURL: getEnv("RESOURCES_SOURCE_URL", "http://localhost:9003"),
			PermitsURL:   getEnv("PERMITS_SOURCE_URL", "http://localhost:9004"),
			RateLimit:    getEnvFloat("SOURCE_RATE_LIMIT", 2.0),
			MaxRetries:   getEnvInt("SOURCE_MAX_RETRIES", 3),
		},
		Refresh: RefreshConfig{
			Interval: getEnvDuration("REFRESH_INTERVAL", 15*time.Minute),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/burn-suitability.db"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "./data/counties.yaml"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh interval must be at least 1 minute")
	}
	if c.Sources.RateLimit <= 0 {
		return fmt.Errorf("source rate limit must be positive")
	}
	if c.Sources.MaxRetries < 1 {
		return fmt.Errorf("source max retries must be at least 1")
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
