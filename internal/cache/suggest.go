// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// suggest.go provides a Valkey-backed cache for rendered typeahead
// fragments. The suggest endpoint is the hottest read path (it fires on
// every keystroke), so its rendered HTML is cached briefly per prefix and
// flushed whenever a category is created.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// suggestKeyPrefix namespaces suggestion keys in Valkey.
	suggestKeyPrefix = "suggest:"

	// DefaultSuggestTTL is how long a rendered suggestion fragment stays
	// cached. Kept short: stale like counts are invisible in the fragment,
	// but new categories should show up quickly.
	DefaultSuggestTTL = 30 * time.Second
)

// SuggestCache manages typeahead fragment caching in Valkey.
type SuggestCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestCache creates a suggestion cache backed by the given Valkey client.
func NewSuggestCache(client *redis.Client, ttl time.Duration) *SuggestCache {
	if ttl == 0 {
		ttl = DefaultSuggestTTL
	}
	return &SuggestCache{client: client, ttl: ttl}
}

// Key normalizes a typed prefix into a cache key so "Py", "py " and "PY"
// share an entry.
func Key(prefix string) string {
	return strings.ToLower(strings.TrimSpace(prefix))
}

// Get retrieves the cached fragment for a prefix key. Returns false on miss.
func (sc *SuggestCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, suggestKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("suggest cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a rendered fragment for a prefix key with the configured TTL.
func (sc *SuggestCache) Set(ctx context.Context, key string, html []byte) {
	if err := sc.client.Set(ctx, suggestKeyPrefix+key, html, sc.ttl).Err(); err != nil {
		slog.Warn("suggest cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached fragment by scanning for the prefix.
// Called when a category is created, since any prefix could match it.
func (sc *SuggestCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, suggestKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("suggest cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("suggest cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("suggest cache cleared", "deleted", deleted)
	}
}
