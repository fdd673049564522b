package cache

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// MemoryStatisticsCache memoizes statistics in process.
type MemoryStatisticsCache struct {
	stats       *LRU[*entity.Statistics]
	comparisons *LRU[*entity.PeriodComparison]
}

// NewMemoryStatisticsCache creates a new in-process statistics cache.
func NewMemoryStatisticsCache(maxEntries int, ttl time.Duration) (*MemoryStatisticsCache, error) {
	stats, err := NewLRU[*entity.Statistics](maxEntries, ttl)
	if err != nil {
		return nil, err
	}
	comparisons, err := NewLRU[*entity.PeriodComparison](maxEntries, ttl)
	if err != nil {
		return nil, err
	}
	return &MemoryStatisticsCache{stats: stats, comparisons: comparisons}, nil
}

// GetStatistics implements adapter.StatisticsCache.
func (c *MemoryStatisticsCache) GetStatistics(_ context.Context, key string) (*entity.Statistics, bool, error) {
	stats, ok := c.stats.Get(key)
	return stats, ok, nil
}

// SetStatistics implements adapter.StatisticsCache.
func (c *MemoryStatisticsCache) SetStatistics(_ context.Context, key string, stats *entity.Statistics) error {
	c.stats.Set(key, stats)
	return nil
}

// GetComparison implements adapter.StatisticsCache.
func (c *MemoryStatisticsCache) GetComparison(_ context.Context, key string) (*entity.PeriodComparison, bool, error) {
	comparison, ok := c.comparisons.Get(key)
	return comparison, ok, nil
}

// SetComparison implements adapter.StatisticsCache.
func (c *MemoryStatisticsCache) SetComparison(_ context.Context, key string, comparison *entity.PeriodComparison) error {
	c.comparisons.Set(key, comparison)
	return nil
}

// Invalidate implements adapter.StatisticsCache.
func (c *MemoryStatisticsCache) Invalidate(_ context.Context) error {
	c.stats.Purge()
	c.comparisons.Purge()
	return nil
}

// CleanExpired removes expired entries from both tables.
func (c *MemoryStatisticsCache) CleanExpired() int {
	return c.stats.CleanExpired() + c.comparisons.CleanExpired()
}
