package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to addr and verifies it answers PING within
// timeout. Client-side caching is off; the sequence only issues writes.
func NewRedisClient(ctx context.Context, addr string, timeout time.Duration) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:      []string{addr},
		DisableCache:     true,
		ConnWriteTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("redis client for %s: %w", addr, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}
