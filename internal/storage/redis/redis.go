package redis

import (
	"context"
	"fmt"
	"time"

	"provaa/internal/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// New connects to Redis and pings it. Callers treat an error as "run
// without Redis" rather than a startup failure.
func New(cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
