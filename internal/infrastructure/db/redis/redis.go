// Package redis owns the Redis client wiring. Nothing in the request path
// reads or writes Redis; the client exists so the readiness probe can report
// on the dependency.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Config carries the Redis settings exposed through the environment.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize caps concurrent connections; zero keeps the driver default.
	PoolSize int
	// DialTimeout bounds the startup ping, not individual commands.
	DialTimeout time.Duration
}

func (c Config) options() *redis.Options {
	opts := &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	return opts
}

// Connect dials Redis and confirms the instance answers a ping before the
// client is handed to the readiness probe. A dead Redis at boot is a
// misconfiguration worth failing fast on, not something to discover on the
// first probe.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
