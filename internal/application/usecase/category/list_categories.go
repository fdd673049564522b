// Package category contains category-related use cases.
package category

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

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	CategoryType *entity.CategoryType // Optional filter by category type
	StartDate    *time.Time           // Optional start date for statistics
	EndDate      *time.Time           // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID               uuid.UUID
	Name             string
	Color            string
	Icon             string
	Type             entity.CategoryType
	TransactionCount int
	PeriodTotal      decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *ListCategoriesUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &ListCategoriesUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the category listing. Transaction counts and period totals
// cover the optional date window, or every transaction when none is given.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	transactions, err := uc.transactionRepo.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
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

	counts := make(map[uuid.UUID]int)
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, txn := range transactions {
		counts[txn.CategoryID]++
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, 0, len(categories)),
	}
	for _, cat := range categories {
		if input.CategoryType != nil && cat.Type != *input.CategoryType {
			continue
		}

		total, ok := totals[cat.ID]
		if !ok {
			total = decimal.Zero
		}

		output.Categories = append(output.Categories, &CategoryOutput{
			ID:               cat.ID,
			Name:             cat.Name,
			Color:            cat.Color,
			Icon:             cat.Icon,
			Type:             cat.Type,
			TransactionCount: counts[cat.ID],
			PeriodTotal:      total,
			CreatedAt:        cat.CreatedAt,
			UpdatedAt:        cat.UpdatedAt,
		})
	}

	return output, nil
}
