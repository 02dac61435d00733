package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the movie library service.
type Config struct {
	Redis     RedisConfig
	Search    SearchConfig
	Dashboard DashboardConfig
	Port      string
}

// RedisConfig holds connection settings for the Redis Stack instance.
// SearchDB holds the movie hashes and the RediSearch index; AnalyticsDB
// holds the usage counters.
type RedisConfig struct {
	Addr        string
	Password    string
	SearchDB    int
	AnalyticsDB int
}

// SearchConfig bounds the search path.
type SearchConfig struct {
	IndexName       string
	KeyPrefix       string
	DefaultPageSize int
	MaxPageSize     int
	FacetLimit      int
	QueryTimeout    time.Duration
	RetryBackoff    time.Duration
	SuggestLimit    int
}

// DashboardConfig bounds the dashboard aggregation.
type DashboardConfig struct {
	TopGenres    int
	ScanPageSize int
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			SearchDB:    getEnvInt("REDIS_SEARCH_DB", 0),
			AnalyticsDB: getEnvInt("REDIS_ANALYTICS_DB", 1),
		},
		Search: SearchConfig{
			IndexName:       getEnv("SEARCH_INDEX_NAME", "movie_library"),
			KeyPrefix:       getEnv("SEARCH_KEY_PREFIX", "movie:"),
			DefaultPageSize: getEnvInt("SEARCH_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getEnvInt("SEARCH_MAX_PAGE_SIZE", 1000),
			FacetLimit:      getEnvInt("SEARCH_FACET_LIMIT", 100),
			QueryTimeout:    getEnvDuration("SEARCH_QUERY_TIMEOUT", 5*time.Second),
			RetryBackoff:    getEnvDuration("SEARCH_RETRY_BACKOFF", 200*time.Millisecond),
			SuggestLimit:    getEnvInt("SEARCH_SUGGEST_LIMIT", 10),
		},
		Dashboard: DashboardConfig{
			TopGenres:    getEnvInt("DASHBOARD_TOP_GENRES", 5),
			ScanPageSize: getEnvInt("DASHBOARD_SCAN_PAGE_SIZE", 500),
			CacheTTL:     getEnvDuration("DASHBOARD_CACHE_TTL", 60*time.Second),
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
