// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache for the public
// marketing pages. Rendered pages are stored by request path so repeat
// visits skip the backend content fetch and template execution. Admin saves
// invalidate the whole cache, since hero/story/contact copy and program
// listings appear on several pages at once.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix namespaces cached pages in Valkey.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a request path. Returns false on miss or on
// any Valkey error; the caller just renders fresh.
func (pc *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+path).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "path", path, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores rendered HTML for a request path with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, path string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+path, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "path", path, "error", err)
	}
}

// InvalidateAll removes every cached page by scanning for the prefix.
// Called after any admin content or program save.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("page cache cleared", "deleted", deleted)
	}
}
