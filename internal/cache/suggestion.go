// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// suggestion.go provides a Valkey-backed cache of encoded suggestion
// responses (L2, shared between instances). Keys embed the fingerprint of
// the snapshot that produced the response, so a snapshot swap retires
// every older entry without a delete.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/metrics"
)

// suggestKeyPrefix is the Valkey key prefix for cached suggestions.
const suggestKeyPrefix = "suggest:"

// SuggestionCache stores encoded suggestion responses in Valkey.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a suggestion cache backed by the given Valkey
// client. It returns nil when ttl is not positive; callers treat a nil
// cache as disabled.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		return nil
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

// SuggestionKey builds the cache key for a request answered from the
// snapshot with the given fingerprint. The wedding type is normalised the
// way the engine compares it. The bride colour is only trimmed, because the
// response echoes it back as the caller typed it.
func SuggestionKey(fingerprint, weddingType, brideColour string) string {
	h := xxhash.New()
	h.WriteString(colour.Key(weddingType))
	h.Write([]byte{0})
	h.WriteString(strings.TrimSpace(brideColour))
	return fingerprint + ":" + strconv.FormatUint(h.Sum64(), 16)
}

// Get retrieves a cached response. Misses and Valkey errors both report false.
func (sc *SuggestionCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, suggestKeyPrefix+key).Bytes()
	if err == redis.Nil {
		metrics.SuggestCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.SuggestCache.WithLabelValues("error").Inc()
		slog.Warn("suggestion cache get error", "key", key, "error", err)
		return nil, false
	}
	metrics.SuggestCache.WithLabelValues("hit").Inc()
	slog.Debug("suggestion cache hit", "key", key)
	return val, true
}

// Set stores an encoded response with the configured TTL.
func (sc *SuggestionCache) Set(ctx context.Context, key string, body []byte) {
	if err := sc.client.Set(ctx, suggestKeyPrefix+key, body, sc.ttl).Err(); err != nil {
		slog.Warn("suggestion cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached suggestion by scanning for the prefix.
// Fingerprinted keys make this optional; it frees memory after a forced
// rebuild.
func (sc *SuggestionCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, suggestKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("suggestion cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("suggestion cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("suggestion cache cleared", "deleted", deleted)
	}
	return deleted
}
