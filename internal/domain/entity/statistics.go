package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// CategoryBreakdown is the per-category subtotal of an aggregation.
type CategoryBreakdown struct {
	CategoryID    uuid.UUID       `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	CategoryIcon  string          `json:"category_icon"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Count         int             `json:"count"`
	Percentage    float64         `json:"percentage"`
}

// TrendPoint is one bucket of the trend series.
type TrendPoint struct {
	PeriodKey        string          `json:"period_key"`
	IncomeTotal      decimal.Decimal `json:"income_total"`
	ExpenseTotal     decimal.Decimal `json:"expense_total"`
	TransferTotal    decimal.Decimal `json:"transfer_total"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transaction_count"`
}

// Statistics is the result of aggregating transactions over a time range.
type Statistics struct {
	TimeRange         valueobject.TimeRange `json:"time_range"`
	StartDate         time.Time             `json:"start_date"`
	EndDate           time.Time             `json:"end_date"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	AverageAmount     decimal.Decimal       `json:"average_amount"`
	MaxDailyAmount    decimal.Decimal       `json:"max_daily_amount"`
	Count             int                   `json:"count"`
	CategoryBreakdown []CategoryBreakdown   `json:"category_breakdown"`
	TrendData         []TrendPoint          `json:"trend_data"`
}

// StatisticsDelta holds signed differences between two aggregations.
type StatisticsDelta struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	Count         int             `json:"count"`
}

// StatisticsPercentChange holds relative changes between two aggregations, in percent.
type StatisticsPercentChange struct {
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
	Count         float64 `json:"count"`
}

// PeriodComparison compares the current period with the immediately preceding one.
type PeriodComparison struct {
	Current       Statistics              `json:"current"`
	Previous      Statistics              `json:"previous"`
	Change        StatisticsDelta         `json:"change"`
	ChangePercent StatisticsPercentChange `json:"change_percent"`
}
