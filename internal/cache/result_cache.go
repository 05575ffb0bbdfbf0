// Package cache provides a two-tier cache for completed analysis
// responses: an in-process expirable LRU backed by an optional shared
// Redis tier. Identical request payloads resolve to the same key, so
// repeated submissions skip the model entirely.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
)

const redisKeyPrefix = "neurolab:analysis:"

// Config defines result cache behavior.
type Config struct {
	// Enabled turns caching on. A disabled cache misses everything.
	Enabled bool
	// TTL for cached responses in both tiers.
	TTL time.Duration
	// MaxEntries bounds the in-memory tier.
	MaxEntries int
	// RedisClient enables the shared tier when non-nil.
	RedisClient *redis.Client
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	RedisHits int64 `json:"redis_hits"`
}

// ResultCache stores analysis responses keyed by request hash.
type ResultCache struct {
	config Config
	memory *lru.LRU[string, domain.AnalysisResponse]
	log    *logrus.Logger

	statsMu sync.Mutex
	stats   Stats
}

// New creates a result cache.
func New(config Config, logger *logrus.Logger) *ResultCache {
	if config.TTL <= 0 {
		config.TTL = 15 * time.Minute
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = 1024
	}

	return &ResultCache{
		config: config,
		memory: lru.NewLRU[string, domain.AnalysisResponse](config.MaxEntries, nil, config.TTL),
		log:    logger,
	}
}

// Get returns the cached response for a request hash, checking the
// memory tier before Redis. A Redis hit is promoted into memory.
func (c *ResultCache) Get(ctx context.Context, key string) (domain.AnalysisResponse, bool) {
	if !c.config.Enabled {
		return domain.AnalysisResponse{}, false
	}

	if response, ok := c.memory.Get(key); ok {
		c.record(func(s *Stats) { s.Hits++ })
		return response, true
	}

	if c.config.RedisClient != nil {
		data, err := c.config.RedisClient.Get(ctx, redisKeyPrefix+key).Bytes()
		if err == nil {
			var response domain.AnalysisResponse
			if err := json.Unmarshal(data, &response); err == nil {
				c.memory.Add(key, response)
				c.record(func(s *Stats) { s.Hits++; s.RedisHits++ })
				return response, true
			}
			c.log.WithField("key", key).Warn("Discarding undecodable cached response")
		} else if err != redis.Nil {
			c.log.WithField("error", err).Warn("Redis cache lookup failed")
		}
	}

	c.record(func(s *Stats) { s.Misses++ })
	return domain.AnalysisResponse{}, false
}

// Put stores a response in both tiers. Redis failures are logged and
// do not fail the request.
func (c *ResultCache) Put(ctx context.Context, key string, response domain.AnalysisResponse) {
	if !c.config.Enabled {
		return
	}

	c.memory.Add(key, response)

	if c.config.RedisClient != nil {
		data, err := json.Marshal(response)
		if err != nil {
			c.log.WithField("error", err).Warn("Failed to encode response for Redis")
			return
		}
		if err := c.config.RedisClient.Set(ctx, redisKeyPrefix+key, data, c.config.TTL).Err(); err != nil {
			c.log.WithField("error", err).Warn("Redis cache store failed")
		}
	}
}

// Invalidate removes a single entry from both tiers.
func (c *ResultCache) Invalidate(ctx context.Context, key string) {
	c.memory.Remove(key)
	if c.config.RedisClient != nil {
		if err := c.config.RedisClient.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
			c.log.WithField("error", err).Warn("Redis cache delete failed")
		}
	}
}

// Purge clears the in-memory tier.
func (c *ResultCache) Purge() {
	c.memory.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Len reports the number of entries in the memory tier.
func (c *ResultCache) Len() int {
	return c.memory.Len()
}

func (c *ResultCache) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}
