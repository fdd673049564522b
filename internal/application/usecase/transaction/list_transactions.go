// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Criteria  Criteria
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID         uuid.UUID
	Type       entity.TransactionType
	Amount     decimal.Decimal
	Date       time.Time
	CategoryID uuid.UUID
	Category   *CategoryOutput
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// TotalsOutput represents aggregated totals in the output.
// Transfers are excluded from every total.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions      []*TransactionOutput
	Totals            TotalsOutput
	ActiveFilterCount int
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *ListTransactionsUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	criteria := input.Criteria
	if criteria.SortBy == "" {
		criteria.SortBy = DefaultSortOrder
	}

	transactions, err := uc.transactionRepo.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	categories, err := uc.categoryRepo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if input.StartDate != nil || input.EndDate != nil {
		start := time.Time{}
		if input.StartDate != nil {
			start = *input.StartDate
		}
		end := uc.clock.Now()
		if input.EndDate != nil {
			end = *input.EndDate
		}
		transactions = statistics.FilterByPeriod(transactions, start, end)
	}

	listed := Apply(transactions, criteria)

	lookup := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, cat := range categories {
		lookup[cat.ID] = cat
	}

	output := &ListTransactionsOutput{
		Transactions:      make([]*TransactionOutput, len(listed)),
		Totals:            calculateTotals(listed),
		ActiveFilterCount: criteria.ActiveFilterCount(),
	}
	for i, txn := range listed {
		output.Transactions[i] = toTransactionOutput(txn, lookup[txn.CategoryID])
	}

	return output, nil
}

// calculateTotals sums income and expense amounts. Transfers do not affect totals.
func calculateTotals(transactions []*entity.Transaction) TotalsOutput {
	totals := TotalsOutput{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, txn := range transactions {
		switch txn.Type {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = totals.IncomeTotal.Add(txn.Amount)
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = totals.ExpenseTotal.Add(txn.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals
}

func toTransactionOutput(txn *entity.Transaction, category *entity.Category) *TransactionOutput {
	output := &TransactionOutput{
		ID:         txn.ID,
		Type:       txn.Type,
		Amount:     txn.Amount,
		Date:       txn.Date,
		CategoryID: txn.CategoryID,
		Note:       txn.Note,
		CreatedAt:  txn.CreatedAt,
		UpdatedAt:  txn.UpdatedAt,
	}

	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}

	return output
}
