package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

var (
	foodID      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	transportID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	salaryID    = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	missingID   = uuid.MustParse("99999999-9999-9999-9999-999999999999")
)

func testCategories() []*entity.Category {
	return []*entity.Category{
		{ID: foodID, Name: "Food", Color: "#FF0000", Icon: "utensils", Type: entity.CategoryTypeExpense},
		{ID: transportID, Name: "Transport", Color: "#00FF00", Icon: "car", Type: entity.CategoryTypeExpense},
		{ID: salaryID, Name: "Salary", Color: "#0000FF", Icon: "briefcase", Type: entity.CategoryTypeIncome},
	}
}

func newTxn(amount int64, txnType entity.TransactionType, categoryID uuid.UUID, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:         uuid.New(),
		Type:       txnType,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
		CategoryID: categoryID,
	}
}

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

type fakeTransactionRepository struct {
	transactions []*entity.Transaction
	err          error
	loads        int
}

func (r *fakeTransactionRepository) LoadTransactions(_ context.Context) ([]*entity.Transaction, error) {
	r.loads++
	return r.transactions, r.err
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.transactions {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepository) Create(_ context.Context, txn *entity.Transaction) error {
	r.transactions = append(r.transactions, txn)
	return nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, _ *entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeCategoryRepository struct {
	categories []*entity.Category
	err        error
}

func (r *fakeCategoryRepository) LoadCategories(_ context.Context) ([]*entity.Category, error) {
	return r.categories, r.err
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, _ uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepository) ExistsByName(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepository) CountTransactions(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeCategoryRepository) Create(_ context.Context, _ *entity.Category) error {
	return nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, _ *entity.Category) error {
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type mapCache struct {
	stats       map[string]*entity.Statistics
	comparisons map[string]*entity.PeriodComparison
}

func newMapCache() *mapCache {
	return &mapCache{
		stats:       make(map[string]*entity.Statistics),
		comparisons: make(map[string]*entity.PeriodComparison),
	}
}

func (c *mapCache) GetStatistics(_ context.Context, key string) (*entity.Statistics, bool, error) {
	stats, ok := c.stats[key]
	return stats, ok, nil
}

func (c *mapCache) SetStatistics(_ context.Context, key string, stats *entity.Statistics) error {
	c.stats[key] = stats
	return nil
}

func (c *mapCache) GetComparison(_ context.Context, key string) (*entity.PeriodComparison, bool, error) {
	comparison, ok := c.comparisons[key]
	return comparison, ok, nil
}

func (c *mapCache) SetComparison(_ context.Context, key string, comparison *entity.PeriodComparison) error {
	c.comparisons[key] = comparison
	return nil
}

func (c *mapCache) Invalidate(_ context.Context) error {
	c.stats = make(map[string]*entity.Statistics)
	c.comparisons = make(map[string]*entity.PeriodComparison)
	return nil
}
