package redis

import (
	"context"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

// NewClient parses redisURL and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	trimmed := strings.TrimSpace(redisURL)
	if trimmed == "" {
		return nil, eris.New("redis url is required")
	}

	opts, err := goredis.ParseURL(trimmed)
	if err != nil {
		return nil, eris.Wrap(err, "parsing redis url")
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "redis ping failed")
	}

	return client, nil
}
