package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// StatisticsCache memoizes aggregation results keyed by query.
// Implementations must be safe for concurrent use. A miss is (nil, false, nil).
type StatisticsCache interface {
	GetStatistics(ctx context.Context, key string) (*entity.Statistics, bool, error)
	SetStatistics(ctx context.Context, key string, stats *entity.Statistics) error
	GetComparison(ctx context.Context, key string) (*entity.PeriodComparison, bool, error)
	SetComparison(ctx context.Context, key string, comparison *entity.PeriodComparison) error

	// Invalidate drops every memoized entry. Called after any write.
	Invalidate(ctx context.Context) error
}

// Clock supplies the current time. Statistics ranges are resolved against it.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock returning time.Now in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
