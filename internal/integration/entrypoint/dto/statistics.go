// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryBreakdownResponse is one category subtotal.
type CategoryBreakdownResponse struct {
	CategoryID    string  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	CategoryIcon  string  `json:"category_icon"`
	TotalAmount   string  `json:"total_amount"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
}

// TrendPointResponse is one trend bucket.
type TrendPointResponse struct {
	PeriodKey        string `json:"period_key"`
	IncomeTotal      string `json:"income_total"`
	ExpenseTotal     string `json:"expense_total"`
	TransferTotal    string `json:"transfer_total"`
	Total            string `json:"total"`
	TransactionCount int    `json:"transaction_count"`
}

// StatisticsResponse represents an aggregation in API responses.
type StatisticsResponse struct {
	TimeRange         string                      `json:"time_range"`
	StartDate         time.Time                   `json:"start_date"`
	EndDate           time.Time                   `json:"end_date"`
	TotalAmount       string                      `json:"total_amount"`
	AverageAmount     string                      `json:"average_amount"`
	MaxDailyAmount    string                      `json:"max_daily_amount"`
	Count             int                         `json:"count"`
	CategoryBreakdown []CategoryBreakdownResponse `json:"category_breakdown"`
	TrendData         []TrendPointResponse        `json:"trend_data"`
	Cached            bool                        `json:"cached"`
}

// ChangeResponse holds the signed differences between two periods.
type ChangeResponse struct {
	TotalAmount   string `json:"total_amount"`
	AverageAmount string `json:"average_amount"`
	Count         int    `json:"count"`
}

// ChangePercentResponse holds the relative differences between two periods.
type ChangePercentResponse struct {
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
	Count         float64 `json:"count"`
}

// ComparisonResponse represents a period comparison in API responses.
type ComparisonResponse struct {
	Current       StatisticsResponse    `json:"current"`
	Previous      StatisticsResponse    `json:"previous"`
	Change        ChangeResponse        `json:"change"`
	ChangePercent ChangePercentResponse `json:"change_percent"`
	Cached        bool                  `json:"cached"`
}

// DataRangeResponse describes the span of recorded transactions.
type DataRangeResponse struct {
	OldestDate        *time.Time `json:"oldest_date"`
	NewestDate        *time.Time `json:"newest_date"`
	TotalTransactions int        `json:"total_transactions"`
	HasData           bool       `json:"has_data"`
}

// ToStatisticsResponse converts an aggregation to its API representation.
func ToStatisticsResponse(stats *entity.Statistics, cached bool) StatisticsResponse {
	breakdown := make([]CategoryBreakdownResponse, len(stats.CategoryBreakdown))
	for i, b := range stats.CategoryBreakdown {
		breakdown[i] = CategoryBreakdownResponse{
			CategoryID:    b.CategoryID.String(),
			CategoryName:  b.CategoryName,
			CategoryColor: b.CategoryColor,
			CategoryIcon:  b.CategoryIcon,
			TotalAmount:   b.TotalAmount.StringFixed(2),
			Count:         b.Count,
			Percentage:    b.Percentage,
		}
	}

	trend := make([]TrendPointResponse, len(stats.TrendData))
	for i, p := range stats.TrendData {
		trend[i] = TrendPointResponse{
			PeriodKey:        p.PeriodKey,
			IncomeTotal:      p.IncomeTotal.StringFixed(2),
			ExpenseTotal:     p.ExpenseTotal.StringFixed(2),
			TransferTotal:    p.TransferTotal.StringFixed(2),
			Total:            p.Total.StringFixed(2),
			TransactionCount: p.TransactionCount,
		}
	}

	return StatisticsResponse{
		TimeRange:         string(stats.TimeRange),
		StartDate:         stats.StartDate,
		EndDate:           stats.EndDate,
		TotalAmount:       stats.TotalAmount.StringFixed(2),
		AverageAmount:     stats.AverageAmount.StringFixed(2),
		MaxDailyAmount:    stats.MaxDailyAmount.StringFixed(2),
		Count:             stats.Count,
		CategoryBreakdown: breakdown,
		TrendData:         trend,
		Cached:            cached,
	}
}

// ToComparisonResponse converts a period comparison to its API representation.
func ToComparisonResponse(comparison *entity.PeriodComparison, cached bool) ComparisonResponse {
	return ComparisonResponse{
		Current:  ToStatisticsResponse(&comparison.Current, cached),
		Previous: ToStatisticsResponse(&comparison.Previous, cached),
		Change: ChangeResponse{
			TotalAmount:   comparison.Change.TotalAmount.StringFixed(2),
			AverageAmount: comparison.Change.AverageAmount.StringFixed(2),
			Count:         comparison.Change.Count,
		},
		ChangePercent: ChangePercentResponse{
			TotalAmount:   comparison.ChangePercent.TotalAmount,
			AverageAmount: comparison.ChangePercent.AverageAmount,
			Count:         comparison.ChangePercent.Count,
		},
		Cached: cached,
	}
}

// ToDataRangeResponse converts the data range output.
func ToDataRangeResponse(output *statistics.GetDataRangeOutput) DataRangeResponse {
	return DataRangeResponse{
		OldestDate:        output.OldestDate,
		NewestDate:        output.NewestDate,
		TotalTransactions: output.TotalTransactions,
		HasData:           output.HasData,
	}
}
