package redis

// Package redis provides Redis-backed caches for analytics summaries.

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	"github.com/crakhack/crakhack-web/internal/ports"
)

const defaultPrefix = "crakhack:"

var _ ports.SummaryCache = (*SummaryCache)(nil)

// SummaryCache stores serialized summaries with a TTL.
type SummaryCache struct {
	client redis.UniversalClient
	prefix string
}

// NewSummaryCache creates a cache using the default key prefix.
func NewSummaryCache(client redis.UniversalClient) *SummaryCache {
	return NewSummaryCacheWithPrefix(client, defaultPrefix)
}

// NewSummaryCacheWithPrefix creates a cache with a custom key prefix.
func NewSummaryCacheWithPrefix(client redis.UniversalClient, prefix string) *SummaryCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SummaryCache{
		client: client,
		prefix: prefix + "summary:",
	}
}

// Get returns the cached summary for key. A miss is (zero, false, nil).
func (c *SummaryCache) Get(ctx context.Context, key string) (analytics.Summary, bool, error) {
	if key == "" {
		return analytics.Summary{}, false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return analytics.Summary{}, false, nil
		}
		return analytics.Summary{}, false, fmt.Errorf("redis get: %w", err)
	}

	var s analytics.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return analytics.Summary{}, false, fmt.Errorf("unmarshal summary: %w", err)
	}
	s.Normalize()
	return s, true, nil
}

// Set stores summary under key. A non-positive ttl skips the write.
func (c *SummaryCache) Set(ctx context.Context, key string, summary analytics.Summary, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
