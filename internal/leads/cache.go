// internal/leads/cache.go
package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"lead-generator/internal/common/logger"
)

const cacheKeyPrefix = "leads:result:"

// Cache stores successful lead results by topic. Degraded results are
// never written here; only the facade's delegation path calls Set.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{
			"component": "lead-cache",
		}),
	}
}

func cacheKey(topic string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(topic))
}

// Get returns the cached result for a topic, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, topic string) (*LeadResult, error) {
	data, err := c.client.Get(ctx, cacheKey(topic)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var lead LeadResult
	if err := json.Unmarshal([]byte(data), &lead); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}

	return &lead, nil
}

// Set stores a result under the topic key with the configured TTL.
func (c *Cache) Set(ctx context.Context, topic string, lead *LeadResult) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(topic), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	c.logger.Debug("result cached", map[string]interface{}{
		"topic": topic,
		"ttl":   c.ttl.String(),
	})
	return nil
}
