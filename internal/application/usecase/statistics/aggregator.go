package statistics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// DefaultUnknownCategoryName labels breakdown entries whose category is not in the snapshot.
const DefaultUnknownCategoryName = "Unknown"

var hundred = decimal.NewFromInt(100)

// Aggregator reduces a transaction snapshot to Statistics.
// It is stateless apart from its labels and safe for concurrent use.
type Aggregator struct {
	unknownCategoryName string
}

// NewAggregator creates a new Aggregator. An empty label falls back to DefaultUnknownCategoryName.
func NewAggregator(unknownCategoryName string) *Aggregator {
	if unknownCategoryName == "" {
		unknownCategoryName = DefaultUnknownCategoryName
	}
	return &Aggregator{unknownCategoryName: unknownCategoryName}
}

var defaultAggregator = NewAggregator(DefaultUnknownCategoryName)

// Aggregate aggregates transactions within bounds using the default labels.
func Aggregate(transactions []*entity.Transaction, categories []*entity.Category, bounds valueobject.Bounds) entity.Statistics {
	return defaultAggregator.Aggregate(transactions, categories, bounds)
}

// Aggregate computes totals, the category breakdown and the trend series for
// the transactions dated within bounds. Transactions outside the bounds are
// ignored. The input is never modified.
func (a *Aggregator) Aggregate(transactions []*entity.Transaction, categories []*entity.Category, bounds valueobject.Bounds) entity.Statistics {
	inRange := FilterByPeriod(transactions, bounds.Start, bounds.End)
	loc := bounds.Location()

	stats := entity.Statistics{
		TimeRange:         bounds.Range,
		StartDate:         bounds.Start,
		EndDate:           bounds.End,
		TotalAmount:       decimal.Zero,
		AverageAmount:     decimal.Zero,
		MaxDailyAmount:    decimal.Zero,
		Count:             len(inRange),
		CategoryBreakdown: []entity.CategoryBreakdown{},
		TrendData:         []entity.TrendPoint{},
	}

	if len(inRange) == 0 {
		return stats
	}

	dailyTotals := make(map[string]decimal.Decimal)
	for _, txn := range inRange {
		stats.TotalAmount = stats.TotalAmount.Add(txn.Amount)
		day := txn.Date.In(loc).Format(valueobject.DayKeyLayout)
		dailyTotals[day] = dailyTotals[day].Add(txn.Amount)
	}

	stats.AverageAmount = stats.TotalAmount.Div(decimal.NewFromInt(int64(stats.Count)))
	for _, total := range dailyTotals {
		if total.GreaterThan(stats.MaxDailyAmount) {
			stats.MaxDailyAmount = total
		}
	}

	stats.CategoryBreakdown = a.buildCategoryBreakdown(inRange, categories, stats.TotalAmount)
	stats.TrendData = buildTrendData(inRange, bounds.Range.TrendGranularity(), loc)

	return stats
}

// buildCategoryBreakdown groups transactions by category, sorted by total descending.
// Ties keep the order in which categories were first encountered.
func (a *Aggregator) buildCategoryBreakdown(transactions []*entity.Transaction, categories []*entity.Category, grandTotal decimal.Decimal) []entity.CategoryBreakdown {
	lookup := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, cat := range categories {
		if cat != nil {
			lookup[cat.ID] = cat
		}
	}

	index := make(map[uuid.UUID]int)
	breakdown := make([]entity.CategoryBreakdown, 0)
	for _, txn := range transactions {
		i, ok := index[txn.CategoryID]
		if !ok {
			i = len(breakdown)
			index[txn.CategoryID] = i
			breakdown = append(breakdown, a.newBreakdownEntry(txn.CategoryID, lookup[txn.CategoryID]))
		}
		breakdown[i].TotalAmount = breakdown[i].TotalAmount.Add(txn.Amount)
		breakdown[i].Count++
	}

	for i := range breakdown {
		breakdown[i].Percentage = percentOf(breakdown[i].TotalAmount, grandTotal)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].TotalAmount.GreaterThan(breakdown[j].TotalAmount)
	})

	return breakdown
}

func (a *Aggregator) newBreakdownEntry(categoryID uuid.UUID, cat *entity.Category) entity.CategoryBreakdown {
	entry := entity.CategoryBreakdown{
		CategoryID:    categoryID,
		CategoryName:  a.unknownCategoryName,
		CategoryColor: entity.DefaultCategoryColor,
		CategoryIcon:  entity.DefaultCategoryIcon,
		TotalAmount:   decimal.Zero,
	}
	if cat != nil {
		entry.CategoryName = cat.Name
		entry.CategoryColor = cat.Color
		entry.CategoryIcon = cat.Icon
	}
	return entry
}

// buildTrendData buckets transactions by period key. Only non-empty buckets are emitted.
func buildTrendData(transactions []*entity.Transaction, granularity valueobject.Granularity, loc *time.Location) []entity.TrendPoint {
	buckets := make(map[string]*entity.TrendPoint)
	for _, txn := range transactions {
		key := granularity.PeriodKey(txn.Date.In(loc))
		point, ok := buckets[key]
		if !ok {
			point = &entity.TrendPoint{
				PeriodKey:     key,
				IncomeTotal:   decimal.Zero,
				ExpenseTotal:  decimal.Zero,
				TransferTotal: decimal.Zero,
				Total:         decimal.Zero,
			}
			buckets[key] = point
		}

		switch txn.Type {
		case entity.TransactionTypeIncome:
			point.IncomeTotal = point.IncomeTotal.Add(txn.Amount)
		case entity.TransactionTypeExpense:
			point.ExpenseTotal = point.ExpenseTotal.Add(txn.Amount)
		case entity.TransactionTypeTransfer:
			point.TransferTotal = point.TransferTotal.Add(txn.Amount)
		}
		point.Total = point.Total.Add(txn.Amount)
		point.TransactionCount++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	trend := make([]entity.TrendPoint, 0, len(keys))
	for _, key := range keys {
		trend = append(trend, *buckets[key])
	}
	return trend
}

// percentOf returns part as a percentage of total, rounded to 2 decimal places.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}
