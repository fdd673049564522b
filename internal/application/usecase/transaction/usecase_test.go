package transaction

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type memoryTransactionRepository struct {
	transactions map[uuid.UUID]*entity.Transaction
	order        []uuid.UUID
}

func newMemoryTransactionRepository(transactions ...*entity.Transaction) *memoryTransactionRepository {
	repo := &memoryTransactionRepository{transactions: make(map[uuid.UUID]*entity.Transaction)}
	for _, txn := range transactions {
		repo.transactions[txn.ID] = txn
		repo.order = append(repo.order, txn.ID)
	}
	return repo
}

func (r *memoryTransactionRepository) LoadTransactions(_ context.Context) ([]*entity.Transaction, error) {
	result := make([]*entity.Transaction, 0, len(r.order))
	for _, id := range r.order {
		if txn, ok := r.transactions[id]; ok {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (r *memoryTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn, nil
}

func (r *memoryTransactionRepository) Create(_ context.Context, txn *entity.Transaction) error {
	r.transactions[txn.ID] = txn
	r.order = append(r.order, txn.ID)
	return nil
}

func (r *memoryTransactionRepository) Update(_ context.Context, txn *entity.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *memoryTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

type memoryCategoryRepository struct {
	categories []*entity.Category
}

func (r *memoryCategoryRepository) LoadCategories(_ context.Context) ([]*entity.Category, error) {
	return r.categories, nil
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, cat := range r.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *memoryCategoryRepository) ExistsByName(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *memoryCategoryRepository) CountTransactions(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *memoryCategoryRepository) Create(_ context.Context, _ *entity.Category) error {
	return nil
}

func (r *memoryCategoryRepository) Update(_ context.Context, _ *entity.Category) error {
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) GetStatistics(_ context.Context, _ string) (*entity.Statistics, bool, error) {
	return nil, false, nil
}

func (c *countingCache) SetStatistics(_ context.Context, _ string, _ *entity.Statistics) error {
	return nil
}

func (c *countingCache) GetComparison(_ context.Context, _ string) (*entity.PeriodComparison, bool, error) {
	return nil, false, nil
}

func (c *countingCache) SetComparison(_ context.Context, _ string, _ *entity.PeriodComparison) error {
	return nil
}

func (c *countingCache) Invalidate(_ context.Context) error {
	c.invalidations++
	return nil
}

func testCategories() *memoryCategoryRepository {
	return &memoryCategoryRepository{
		categories: []*entity.Category{
			{ID: foodID, Name: "Food", Color: "#FF0000", Icon: "utensils", Type: entity.CategoryTypeExpense},
			{ID: transportID, Name: "Transport", Color: "#00FF00", Icon: "car", Type: entity.CategoryTypeExpense},
			{ID: salaryID, Name: "Salary", Color: "#0000FF", Icon: "briefcase", Type: entity.CategoryTypeIncome},
		},
	}
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	validInput := CreateTransactionInput{
		Type:       entity.TransactionTypeExpense,
		Amount:     decimal.RequireFromString("12.50"),
		Date:       day(10),
		CategoryID: foodID,
		Note:       "lunch",
	}

	tests := []struct {
		name         string
		mutate       func(in *CreateTransactionInput)
		expectedCode domainerror.TransactionErrorCode
	}{
		{name: "valid", mutate: func(in *CreateTransactionInput) {}},
		{
			name:         "missing category",
			mutate:       func(in *CreateTransactionInput) { in.CategoryID = uuid.Nil },
			expectedCode: domainerror.ErrCodeMissingTransactionFields,
		},
		{
			name:         "missing date",
			mutate:       func(in *CreateTransactionInput) { in.Date = time.Time{} },
			expectedCode: domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name:         "unknown type",
			mutate:       func(in *CreateTransactionInput) { in.Type = "refund" },
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:         "zero amount",
			mutate:       func(in *CreateTransactionInput) { in.Amount = decimal.Zero },
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "negative amount",
			mutate:       func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-5) },
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "note too long",
			mutate:       func(in *CreateTransactionInput) { in.Note = strings.Repeat("n", MaxNoteLength+1) },
			expectedCode: domainerror.ErrCodeNoteTooLong,
		},
		{
			name:         "unknown category",
			mutate:       func(in *CreateTransactionInput) { in.CategoryID = uuid.New() },
			expectedCode: domainerror.ErrCodeTxnCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryTransactionRepository()
			cache := &countingCache{}
			uc := NewCreateTransactionUseCase(repo, testCategories(), cache)

			input := validInput
			tt.mutate(&input)
			output, err := uc.Execute(context.Background(), input)

			if tt.expectedCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if output.Transaction.Category == nil || output.Transaction.Category.Name != "Food" {
					t.Errorf("expected category Food, got %+v", output.Transaction.Category)
				}
				if len(repo.transactions) != 1 {
					t.Errorf("expected 1 stored transaction, got %d", len(repo.transactions))
				}
				if cache.invalidations != 1 {
					t.Errorf("expected 1 invalidation, got %d", cache.invalidations)
				}
				return
			}

			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Fatalf("expected TransactionError, got %v", err)
			}
			if txnErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, txnErr.Code)
			}
			if len(repo.transactions) != 0 {
				t.Errorf("expected nothing stored, got %d", len(repo.transactions))
			}
			if cache.invalidations != 0 {
				t.Errorf("expected no invalidation, got %d", cache.invalidations)
			}
		})
	}
}

func TestUpdateTransactionUseCase_Execute(t *testing.T) {
	original := newTxn(10, entity.TransactionTypeExpense, foodID, day(3))
	repo := newMemoryTransactionRepository(original)
	cache := &countingCache{}
	uc := NewUpdateTransactionUseCase(repo, testCategories(), cache)

	amount := decimal.NewFromInt(42)
	category := transportID
	output, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: original.ID,
		Amount:        &amount,
		CategoryID:    &category,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Transaction.Amount.Equal(amount) {
		t.Errorf("expected amount 42, got %s", output.Transaction.Amount)
	}
	if output.Transaction.Category.Name != "Transport" {
		t.Errorf("expected category Transport, got %s", output.Transaction.Category.Name)
	}
	if !original.Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected original entity to be untouched, got %s", original.Amount)
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 invalidation, got %d", cache.invalidations)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: uuid.New()})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: original.ID, Amount: &negative})
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})
}

func TestDeleteTransactionUseCase_Execute(t *testing.T) {
	txn := newTxn(10, entity.TransactionTypeExpense, foodID, day(3))
	repo := newMemoryTransactionRepository(txn)
	cache := &countingCache{}
	uc := NewDeleteTransactionUseCase(repo, cache)

	output, err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: txn.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Success {
		t.Errorf("expected success")
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 invalidation, got %d", cache.invalidations)
	}

	_, err = uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: txn.ID})
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected %s, got %v", domainerror.ErrCodeTransactionNotFound, err)
	}
}

func TestListTransactionsUseCase_Execute(t *testing.T) {
	expense := entity.TransactionTypeExpense
	repo := newMemoryTransactionRepository(
		newTxn(10, entity.TransactionTypeExpense, foodID, day(1)),
		newTxn(500, entity.TransactionTypeIncome, salaryID, day(2)),
		newTxn(50, entity.TransactionTypeExpense, transportID, day(3)),
		newTxn(70, entity.TransactionTypeTransfer, transportID, day(4)),
		newTxn(30, entity.TransactionTypeExpense, uuid.New(), day(5)),
	)
	uc := NewListTransactionsUseCase(repo, testCategories(), fixedClock{now: day(3)})

	t.Run("all with totals", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListTransactionsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := amounts(outputsToEntities(output.Transactions)); !slices.Equal(got, []int64{30, 70, 50, 500, 10}) {
			t.Errorf("expected newest first, got %v", got)
		}
		if !output.Totals.IncomeTotal.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected income 500, got %s", output.Totals.IncomeTotal)
		}
		if !output.Totals.ExpenseTotal.Equal(decimal.NewFromInt(90)) {
			t.Errorf("expected expense 90, got %s", output.Totals.ExpenseTotal)
		}
		if !output.Totals.NetTotal.Equal(decimal.NewFromInt(410)) {
			t.Errorf("expected net 410, got %s", output.Totals.NetTotal)
		}
		if output.ActiveFilterCount != 0 {
			t.Errorf("expected 0 active filters, got %d", output.ActiveFilterCount)
		}
		if output.Transactions[0].Category != nil {
			t.Errorf("expected unknown category to be omitted, got %+v", output.Transactions[0].Category)
		}
	})

	t.Run("filtered and sorted", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListTransactionsInput{
			Criteria: Criteria{TypeFilter: &expense, SortBy: SortHighest},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := amounts(outputsToEntities(output.Transactions)); !slices.Equal(got, []int64{50, 30, 10}) {
			t.Errorf("expected [50 30 10], got %v", got)
		}
		if output.ActiveFilterCount != 2 {
			t.Errorf("expected 2 active filters, got %d", output.ActiveFilterCount)
		}
	})

	t.Run("date window", func(t *testing.T) {
		start := day(2)
		end := day(3)
		output, err := uc.Execute(context.Background(), ListTransactionsInput{
			StartDate: &start,
			EndDate:   &end,
			Criteria:  Criteria{SortBy: SortOldest},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := amounts(outputsToEntities(output.Transactions)); !slices.Equal(got, []int64{500, 50}) {
			t.Errorf("expected [500 50], got %v", got)
		}
	})

	t.Run("open end stops at the clock", func(t *testing.T) {
		start := day(2)
		output, err := uc.Execute(context.Background(), ListTransactionsInput{
			StartDate: &start,
			Criteria:  Criteria{SortBy: SortOldest},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := amounts(outputsToEntities(output.Transactions)); !slices.Equal(got, []int64{500, 50}) {
			t.Errorf("expected [500 50], got %v", got)
		}
	})
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func outputsToEntities(outputs []*TransactionOutput) []*entity.Transaction {
	result := make([]*entity.Transaction, len(outputs))
	for i, out := range outputs {
		result[i] = &entity.Transaction{ID: out.ID, Amount: out.Amount}
	}
	return result
}
