package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// TopN is the default ranking depth for the bar panel.
	TopN int

	// FetchTimeout bounds each remote dataset request.
	FetchTimeout time.Duration

	// SnapshotDate stamps rows from undated schemas (YYYY-MM-DD); empty means
	// the day the process loads them.
	SnapshotDate string

	Sources     []SourceSpec
	Redis       RedisConfig
	PostgresDSN string
}

// SourceSpec describes one configured dataset source. Exactly one of Path and
// URL is set.
type SourceSpec struct {
	Schema string
	Path   string
	URL    string
}

// RedisConfig captures the optional dataset-cache connection. An empty URL
// disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// TTL bounds how long a fetched dataset payload may be reused.
	TTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          envDefault("COVIDBOARD_ADDR", ":8080"),
		JWTSigningKey: envDefault("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TopN:          envInt("COVIDBOARD_TOP_N", 10),
		FetchTimeout:  envDuration("DATASET_FETCH_TIMEOUT", 30*time.Second),
		SnapshotDate:  os.Getenv("DATASET_SNAPSHOT_DATE"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			TTL:          envDuration("DATASET_CACHE_TTL", 6*time.Hour),
		},
	}
	cfg.Sources = sourcesFromEnv()
	return cfg
}

// sourcesFromEnv assembles the configured dataset sources. With nothing set,
// the service loads the two local files the project ships with.
func sourcesFromEnv() []SourceSpec {
	specs := []SourceSpec{}
	add := func(schema, pathVar, urlVar, defaultPath string) {
		spec := SourceSpec{Schema: schema, Path: os.Getenv(pathVar), URL: os.Getenv(urlVar)}
		if spec.Path == "" && spec.URL == "" {
			spec.Path = defaultPath
		}
		if spec.Path != "" || spec.URL != "" {
			specs = append(specs, spec)
		}
	}
	add("daywise", "DAYWISE_PATH", "DAYWISE_URL", "data/day_wise.csv")
	add("regionlatest", "REGION_LATEST_PATH", "REGION_LATEST_URL", "data/country_wise_latest.csv")
	add("timeseries", "TIMESERIES_PATH", "TIMESERIES_URL", "")
	return specs
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
