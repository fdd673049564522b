package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// previousPeriodGap separates the previous window from the current one so the
// two never share an instant.
const previousPeriodGap = time.Millisecond

// PreviousBounds returns the window of equal length ending just before current starts.
func PreviousBounds(current valueobject.Bounds) valueobject.Bounds {
	duration := current.Duration()
	return valueobject.Bounds{
		Range: current.Range,
		Start: current.Start.Add(-duration),
		End:   current.Start.Add(-previousPeriodGap),
	}
}

// Compare aggregates the resolved range and the window immediately preceding it.
func Compare(transactions []*entity.Transaction, categories []*entity.Category, r valueobject.TimeRange, now time.Time, customStart, customEnd *time.Time) entity.PeriodComparison {
	return defaultAggregator.Compare(transactions, categories, ResolveBounds(r, now, customStart, customEnd))
}

// Compare aggregates current and its previous window and reports the change between them.
func (a *Aggregator) Compare(transactions []*entity.Transaction, categories []*entity.Category, current valueobject.Bounds) entity.PeriodComparison {
	currentStats := a.Aggregate(transactions, categories, current)
	previousStats := a.Aggregate(transactions, categories, PreviousBounds(current))

	return entity.PeriodComparison{
		Current:  currentStats,
		Previous: previousStats,
		Change: entity.StatisticsDelta{
			TotalAmount:   currentStats.TotalAmount.Sub(previousStats.TotalAmount),
			AverageAmount: currentStats.AverageAmount.Sub(previousStats.AverageAmount),
			Count:         currentStats.Count - previousStats.Count,
		},
		ChangePercent: entity.StatisticsPercentChange{
			TotalAmount:   calculatePercentChange(currentStats.TotalAmount, previousStats.TotalAmount),
			AverageAmount: calculatePercentChange(currentStats.AverageAmount, previousStats.AverageAmount),
			Count:         calculatePercentChange(decimal.NewFromInt(int64(currentStats.Count)), decimal.NewFromInt(int64(previousStats.Count))),
		},
	}
}

// calculatePercentChange returns the relative change from previous to current,
// rounded to 2 decimal places. Growth from zero is reported as 100%.
func calculatePercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(hundred).Round(2).Float64()
	return pct
}
