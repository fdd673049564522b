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

// ComparePeriodsInput represents the input for comparing a period with the previous one.
type ComparePeriodsInput struct {
	Range       valueobject.TimeRange
	CustomStart *time.Time
	CustomEnd   *time.Time
	Type        *entity.TransactionType
	CategoryIDs []uuid.UUID
}

// ComparePeriodsOutput represents the output of a period comparison.
type ComparePeriodsOutput struct {
	Comparison *entity.PeriodComparison
	Cached     bool
}

// ComparePeriodsUseCase aggregates a period and the equal-length period before it.
type ComparePeriodsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.StatisticsCache
	clock           adapter.Clock
	aggregator      *Aggregator
}

// NewComparePeriodsUseCase creates a new ComparePeriodsUseCase instance.
func NewComparePeriodsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	aggregator *Aggregator,
) *ComparePeriodsUseCase {
	if aggregator == nil {
		aggregator = defaultAggregator
	}
	return &ComparePeriodsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		clock:           clock,
		aggregator:      aggregator,
	}
}

// Execute performs the comparison.
func (uc *ComparePeriodsUseCase) Execute(ctx context.Context, input ComparePeriodsInput) (*ComparePeriodsOutput, error) {
	r, err := ResolveTimeRange(string(input.Range))
	if err != nil {
		return nil, err
	}

	bounds := ResolveBounds(r, uc.clock.Now(), input.CustomStart, input.CustomEnd)
	key := cacheKey(cacheKindComparison, bounds, input.Type, input.CategoryIDs)

	if uc.cache != nil {
		cached, ok, err := uc.cache.GetComparison(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "comparison cache read failed", "key", key, "error", err)
		} else if ok {
			slog.DebugContext(ctx, "comparison cache hit", "key", key)
			return &ComparePeriodsOutput{Comparison: cached, Cached: true}, nil
		}
	}

	transactions, categories, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo)
	if err != nil {
		return nil, err
	}

	narrowed := FilterByCategories(FilterByType(transactions, input.Type), input.CategoryIDs)
	comparison := uc.aggregator.Compare(narrowed, categories, bounds)

	if uc.cache != nil {
		if err := uc.cache.SetComparison(ctx, key, &comparison); err != nil {
			slog.WarnContext(ctx, "comparison cache write failed", "key", key, "error", err)
		}
	}

	return &ComparePeriodsOutput{Comparison: &comparison}, nil
}
