package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, repo interface {
	Create(context.Context, *entity.Category) error
}, name string) *entity.Category {
	t.Helper()
	cat := entity.NewCategory(name, "#112233", "tag", entity.CategoryTypeExpense)
	if err := repo.Create(context.Background(), cat); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return cat
}

func TestTransactionRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	food := seedCategory(t, categories, "Food")

	later := entity.NewTransaction(entity.TransactionTypeExpense, decimal.RequireFromString("12.34"),
		time.Date(2025, time.January, 10, 14, 30, 0, 0, time.UTC), food.ID, "lunch")
	earlier := entity.NewTransaction(entity.TransactionTypeIncome, decimal.NewFromInt(1000),
		time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC), food.ID, "")

	for _, txn := range []*entity.Transaction{later, earlier} {
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	loaded, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(loaded))
	}
	if loaded[0].ID != earlier.ID {
		t.Errorf("expected oldest first, got %s", loaded[0].ID)
	}
	if !loaded[1].Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Errorf("expected amount 12.34, got %s", loaded[1].Amount)
	}
	if !loaded[1].Date.Equal(later.Date) {
		t.Errorf("expected date %v, got %v", later.Date, loaded[1].Date)
	}
	if loaded[1].Type != entity.TransactionTypeExpense || loaded[1].Note != "lunch" {
		t.Errorf("expected expense with note lunch, got %s %q", loaded[1].Type, loaded[1].Note)
	}

	later.Amount = decimal.NewFromInt(99)
	if err := repo.Update(ctx, later); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := repo.FindByID(ctx, later.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(decimal.NewFromInt(99)) {
		t.Errorf("expected amount 99, got %s", found.Amount)
	}

	if err := repo.Delete(ctx, later.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, later.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, later.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}

	loaded, err = repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("expected soft-deleted transaction to be hidden, got %d", len(loaded))
	}
}

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)
	transactions := NewTransactionRepository(db)

	transport := seedCategory(t, repo, "Transport")
	food := seedCategory(t, repo, "Food")

	loaded, err := repo.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Name != "Food" {
		t.Errorf("expected categories ordered by name, got %+v", loaded)
	}

	tests := []struct {
		name      string
		lookup    string
		excludeID *uuid.UUID
		expected  bool
	}{
		{name: "exact", lookup: "Food", expected: true},
		{name: "case-insensitive", lookup: "fOOD", expected: true},
		{name: "excluded self", lookup: "food", excludeID: &food.ID, expected: false},
		{name: "other excluded", lookup: "food", excludeID: &transport.ID, expected: true},
		{name: "missing", lookup: "Rent", expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.ExistsByName(ctx, tt.lookup, tt.excludeID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exists != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, exists)
			}
		})
	}

	txn := entity.NewTransaction(entity.TransactionTypeExpense, decimal.NewFromInt(5), time.Now().UTC(), food.ID, "")
	if err := transactions.Create(ctx, txn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, err := repo.CountTransactions(ctx, food.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 transaction, got %d", count)
	}

	if err := repo.Delete(ctx, transport.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, transport.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

type countingTransactionRepository struct {
	*transactionRepository
	loads int
}

func (r *countingTransactionRepository) LoadTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	r.loads++
	return r.transactionRepository.LoadTransactions(ctx)
}

func TestCachedTransactionRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	food := seedCategory(t, NewCategoryRepository(db), "Food")

	inner := &countingTransactionRepository{transactionRepository: &transactionRepository{db: db}}
	snapshots, err := cache.NewLRU[[]*entity.Transaction](1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo := NewCachedTransactionRepository(inner, snapshots)

	for i := 0; i < 3; i++ {
		if _, err := repo.LoadTransactions(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.loads != 1 {
		t.Errorf("expected 1 load, got %d", inner.loads)
	}

	txn := entity.NewTransaction(entity.TransactionTypeExpense, decimal.NewFromInt(5), time.Now().UTC(), food.ID, "")
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("expected new transaction after invalidation, got %d", len(loaded))
	}
	if inner.loads != 2 {
		t.Errorf("expected 2 loads, got %d", inner.loads)
	}

	if err := repo.Delete(ctx, txn.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err = repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty snapshot after delete, got %d", len(loaded))
	}
}

func TestCachedCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snapshots, err := cache.NewLRU[[]*entity.Category](1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo := NewCachedCategoryRepository(NewCategoryRepository(db), snapshots)

	if loaded, _ := repo.LoadCategories(ctx); len(loaded) != 0 {
		t.Fatalf("expected no categories, got %d", len(loaded))
	}

	food := seedCategory(t, repo, "Food")

	loaded, err := repo.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != food.ID {
		t.Errorf("expected Food after create, got %+v", loaded)
	}

	renamed := *food
	renamed.Name = "Groceries"
	if err := repo.Update(ctx, &renamed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, _ = repo.LoadCategories(ctx)
	if loaded[0].Name != "Groceries" {
		t.Errorf("expected renamed category, got %s", loaded[0].Name)
	}
}
