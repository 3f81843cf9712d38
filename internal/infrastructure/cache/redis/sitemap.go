package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/sitemap"
)

// DefaultSitemapKey is the key the rendered sitemap document is stored under.
const DefaultSitemapKey = "cartaseo:sitemap:xml"

// SitemapCache stores the rendered sitemap document in Redis.
type SitemapCache struct {
	client goredis.Cmdable
	key    string
}

var _ sitemap.DocumentCache = (*SitemapCache)(nil)

// NewSitemapCache constructs a cache using key, or DefaultSitemapKey when blank.
func NewSitemapCache(client goredis.Cmdable, key string) (*SitemapCache, error) {
	if client == nil {
		return nil, eris.New("redis client is required")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultSitemapKey
	}
	return &SitemapCache{client: client, key: key}, nil
}

// Get returns the cached document and whether it was present.
func (c *SitemapCache) Get(ctx context.Context) ([]byte, bool, error) {
	document, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, eris.Wrap(err, "reading cached sitemap")
	}
	return document, true, nil
}

// Set stores the document for ttl.
func (c *SitemapCache) Set(ctx context.Context, document []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key, document, ttl).Err(); err != nil {
		return eris.Wrap(err, "caching sitemap")
	}
	return nil
}

// Delete drops the cached document.
func (c *SitemapCache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return eris.Wrap(err, "invalidating cached sitemap")
	}
	return nil
}
