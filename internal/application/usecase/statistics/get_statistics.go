package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// GetStatisticsInput represents the input for aggregating statistics.
type GetStatisticsInput struct {
	Range       valueobject.TimeRange
	CustomStart *time.Time
	CustomEnd   *time.Time
	Type        *entity.TransactionType
	CategoryIDs []uuid.UUID
}

// GetStatisticsOutput represents the output of aggregating statistics.
type GetStatisticsOutput struct {
	Statistics *entity.Statistics
	Cached     bool
}

// GetStatisticsUseCase aggregates the transaction snapshot over a time range.
type GetStatisticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.StatisticsCache
	clock           adapter.Clock
	aggregator      *Aggregator
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
// cache may be nil to disable memoization.
func NewGetStatisticsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	aggregator *Aggregator,
) *GetStatisticsUseCase {
	if aggregator == nil {
		aggregator = defaultAggregator
	}
	return &GetStatisticsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		clock:           clock,
		aggregator:      aggregator,
	}
}

// Execute resolves the range, narrows the snapshot and aggregates it.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*GetStatisticsOutput, error) {
	r, err := ResolveTimeRange(string(input.Range))
	if err != nil {
		return nil, err
	}

	bounds := ResolveBounds(r, uc.clock.Now(), input.CustomStart, input.CustomEnd)
	key := cacheKey(cacheKindStatistics, bounds, input.Type, input.CategoryIDs)

	if uc.cache != nil {
		cached, ok, err := uc.cache.GetStatistics(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "statistics cache read failed", "key", key, "error", err)
		} else if ok {
			slog.DebugContext(ctx, "statistics cache hit", "key", key)
			return &GetStatisticsOutput{Statistics: cached, Cached: true}, nil
		}
	}

	transactions, categories, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo)
	if err != nil {
		return nil, err
	}

	narrowed := FilterByCategories(FilterByType(transactions, input.Type), input.CategoryIDs)
	stats := uc.aggregator.Aggregate(narrowed, categories, bounds)

	if uc.cache != nil {
		if err := uc.cache.SetStatistics(ctx, key, &stats); err != nil {
			slog.WarnContext(ctx, "statistics cache write failed", "key", key, "error", err)
		}
	}

	return &GetStatisticsOutput{Statistics: &stats}, nil
}
