package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/config"
)

// NewSearchClient connects to the Redis logical DB holding the movie
// hashes and the RediSearch index.
func NewSearchClient(cfg config.RedisConfig) (*redis.Client, error) {
	return newClient(cfg.Addr, cfg.Password, cfg.SearchDB, "search")
}

// NewAnalyticsClient connects to the Redis logical DB holding the usage
// counters. Analytics are best-effort, so callers may treat a failure
// here as non-fatal.
func NewAnalyticsClient(cfg config.RedisConfig) (*redis.Client, error) {
	return newClient(cfg.Addr, cfg.Password, cfg.AnalyticsDB, "analytics")
}

func newClient(addr, password string, db int, role string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (%s): %w", role, err)
	}

	slog.Info("connected to Redis", "addr", addr, "db", db, "role", role)
	return client, nil
}
