package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	Date          *time.Time
	CategoryID    *uuid.UUID
	Note          *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	statsCache      adapter.StatisticsCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatisticsCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		statsCache:      statsCache,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	// Work on a copy so the cached snapshot is never mutated.
	updated := *existing
	if input.Type != nil {
		updated.Type = *input.Type
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Date != nil {
		updated.Date = *input.Date
	}
	if input.CategoryID != nil {
		updated.CategoryID = *input.CategoryID
	}
	if input.Note != nil {
		updated.Note = *input.Note
	}

	if err := validateTransactionFields(updated.Type, updated.Amount, updated.Date, updated.CategoryID, updated.Note); err != nil {
		return nil, err
	}

	category, err := findCategory(ctx, uc.categoryRepo, updated.CategoryID)
	if err != nil {
		return nil, err
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateStatistics(ctx, uc.statsCache)

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(&updated, category),
	}, nil
}
