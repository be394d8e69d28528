package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoked sessions are the only state this service keeps in Redis, so a
// failed ping here aborts startup instead of surfacing on the first logout.
const defaultPingTimeout = 5 * time.Second

// Config captures the connection settings for the revocation backend.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// clientOptions maps Config onto go-redis client options.
func clientOptions(cfg Config) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Connect dials the revocation backend and verifies connectivity with a
// ping. The ping is bounded by cfg.Timeout, defaulting to defaultPingTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
