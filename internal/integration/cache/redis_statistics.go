package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DefaultRedisKeyPrefix namespaces every key written by RedisStatisticsCache.
const DefaultRedisKeyPrefix = "ledger:stats"

// RedisStatisticsCache memoizes statistics in Redis as JSON.
// Keys embed a generation number; Invalidate bumps it so stale entries are
// never read again and expire on their own.
type RedisStatisticsCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStatisticsCache creates a new Redis-backed statistics cache.
func NewRedisStatisticsCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStatisticsCache {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStatisticsCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// GetStatistics implements adapter.StatisticsCache.
func (c *RedisStatisticsCache) GetStatistics(ctx context.Context, key string) (*entity.Statistics, bool, error) {
	var stats entity.Statistics
	ok, err := c.get(ctx, "stats", key, &stats)
	if err != nil || !ok {
		return nil, false, err
	}
	return &stats, true, nil
}

// SetStatistics implements adapter.StatisticsCache.
func (c *RedisStatisticsCache) SetStatistics(ctx context.Context, key string, stats *entity.Statistics) error {
	return c.set(ctx, "stats", key, stats)
}

// GetComparison implements adapter.StatisticsCache.
func (c *RedisStatisticsCache) GetComparison(ctx context.Context, key string) (*entity.PeriodComparison, bool, error) {
	var comparison entity.PeriodComparison
	ok, err := c.get(ctx, "compare", key, &comparison)
	if err != nil || !ok {
		return nil, false, err
	}
	return &comparison, true, nil
}

// SetComparison implements adapter.StatisticsCache.
func (c *RedisStatisticsCache) SetComparison(ctx context.Context, key string, comparison *entity.PeriodComparison) error {
	return c.set(ctx, "compare", key, comparison)
}

// Invalidate implements adapter.StatisticsCache.
func (c *RedisStatisticsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("failed to bump statistics cache version: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (c *RedisStatisticsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisStatisticsCache) get(ctx context.Context, table, key string, dest any) (bool, error) {
	fullKey, err := c.entryKey(ctx, table, key)
	if err != nil {
		return false, err
	}

	raw, err := c.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", fullKey, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", fullKey, err)
	}
	return true, nil
}

func (c *RedisStatisticsCache) set(ctx context.Context, table, key string, value any) error {
	fullKey, err := c.entryKey(ctx, table, key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", fullKey, err)
	}

	if err := c.client.Set(ctx, fullKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullKey, err)
	}
	return nil
}

func (c *RedisStatisticsCache) entryKey(ctx context.Context, table, key string) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read statistics cache version: %w", err)
	}
	return fmt.Sprintf("%s:v%d:%s:%s", c.prefix, version, table, key), nil
}

func (c *RedisStatisticsCache) versionKey() string {
	return c.prefix + ":version"
}
