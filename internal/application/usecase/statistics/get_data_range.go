package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// GetDataRangeOutput represents the output of getting the data range.
type GetDataRangeOutput struct {
	OldestDate        *time.Time `json:"oldest_date"`
	NewestDate        *time.Time `json:"newest_date"`
	TotalTransactions int        `json:"total_transactions"`
	HasData           bool       `json:"has_data"`
}

// GetDataRangeUseCase reports the span of dates covered by stored transactions.
type GetDataRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the date range of the stored transactions.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context) (*GetDataRangeOutput, error) {
	transactions, err := uc.transactionRepo.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	output := &GetDataRangeOutput{TotalTransactions: len(transactions)}
	for _, txn := range transactions {
		date := txn.Date
		if output.OldestDate == nil || date.Before(*output.OldestDate) {
			output.OldestDate = &date
		}
		if output.NewestDate == nil || date.After(*output.NewestDate) {
			output.NewestDate = &date
		}
	}
	output.HasData = output.OldestDate != nil && output.NewestDate != nil

	return output, nil
}
