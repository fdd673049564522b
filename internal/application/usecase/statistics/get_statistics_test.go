package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

func TestGetStatisticsUseCase_Execute(t *testing.T) {
	expense := entity.TransactionTypeExpense
	transactions := []*entity.Transaction{
		newTxn(50, entity.TransactionTypeExpense, foodID, date(2025, time.January, 10, 9)),
		newTxn(30, entity.TransactionTypeExpense, transportID, date(2025, time.January, 10, 10)),
		newTxn(2000, entity.TransactionTypeIncome, salaryID, date(2025, time.January, 5, 9)),
	}

	tests := []struct {
		name          string
		input         GetStatisticsInput
		expectedTotal int64
		expectedCount int
	}{
		{
			name:          "defaults to month",
			input:         GetStatisticsInput{},
			expectedTotal: 2080,
			expectedCount: 3,
		},
		{
			name:          "narrows by type",
			input:         GetStatisticsInput{Range: valueobject.TimeRangeMonth, Type: &expense},
			expectedTotal: 80,
			expectedCount: 2,
		},
		{
			name:          "narrows by categories",
			input:         GetStatisticsInput{Range: valueobject.TimeRangeMonth, CategoryIDs: []uuid.UUID{transportID, salaryID}},
			expectedTotal: 2030,
			expectedCount: 2,
		},
		{
			name:          "day range excludes earlier days",
			input:         GetStatisticsInput{Range: valueobject.TimeRangeDay},
			expectedTotal: 80,
			expectedCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetStatisticsUseCase(
				&fakeTransactionRepository{transactions: transactions},
				&fakeCategoryRepository{categories: testCategories()},
				nil,
				fixedClock{now: date(2025, time.January, 10, 20)},
				nil,
			)

			output, err := uc.Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !output.Statistics.TotalAmount.Equal(decimal.NewFromInt(tt.expectedTotal)) {
				t.Errorf("expected total %d, got %s", tt.expectedTotal, output.Statistics.TotalAmount)
			}
			if output.Statistics.Count != tt.expectedCount {
				t.Errorf("expected count %d, got %d", tt.expectedCount, output.Statistics.Count)
			}
		})
	}
}

func TestGetStatisticsUseCase_Errors(t *testing.T) {
	tests := []struct {
		name          string
		transactions  []*entity.Transaction
		loadErr       error
		input         GetStatisticsInput
		expectedCode  domainerror.StatisticsErrorCode
		expectInvalid bool
	}{
		{
			name:          "unknown range",
			input:         GetStatisticsInput{Range: "fortnight"},
			expectedCode:  domainerror.ErrCodeInvalidTimeRange,
			expectInvalid: true,
		},
		{
			name: "non-positive amount",
			transactions: []*entity.Transaction{
				newTxn(0, entity.TransactionTypeExpense, foodID, date(2025, time.January, 2, 9)),
			},
			expectedCode:  domainerror.ErrCodeInvalidSnapshot,
			expectInvalid: true,
		},
		{
			name: "missing date",
			transactions: []*entity.Transaction{
				newTxn(10, entity.TransactionTypeExpense, foodID, time.Time{}),
			},
			expectedCode:  domainerror.ErrCodeInvalidSnapshot,
			expectInvalid: true,
		},
		{
			name:          "repository failure",
			loadErr:       errors.New("disk unavailable"),
			expectedCode:  domainerror.ErrCodeStatisticsInternalError,
			expectInvalid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetStatisticsUseCase(
				&fakeTransactionRepository{transactions: tt.transactions, err: tt.loadErr},
				&fakeCategoryRepository{categories: testCategories()},
				nil,
				fixedClock{now: date(2025, time.January, 10, 20)},
				nil,
			)

			_, err := uc.Execute(context.Background(), tt.input)

			var statsErr *domainerror.StatisticsError
			if !errors.As(err, &statsErr) {
				t.Fatalf("expected StatisticsError, got %v", err)
			}
			if statsErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, statsErr.Code)
			}
			if errors.Is(err, domainerror.ErrInvalidInput) != tt.expectInvalid {
				t.Errorf("expected invalid input %v, got %v", tt.expectInvalid, !tt.expectInvalid)
			}
		})
	}
}

func TestGetStatisticsUseCase_UsesCache(t *testing.T) {
	repo := &fakeTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn(10, entity.TransactionTypeExpense, foodID, date(2025, time.January, 2, 9)),
		},
	}
	cache := newMapCache()
	clock := fixedClock{now: date(2025, time.January, 10, 20)}
	uc := NewGetStatisticsUseCase(repo, &fakeCategoryRepository{}, cache, clock, nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, GetStatisticsInput{Range: valueobject.TimeRangeMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, GetStatisticsInput{Range: valueobject.TimeRangeMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Cached {
		t.Errorf("expected first call to miss the cache")
	}
	if !second.Cached {
		t.Errorf("expected second call to hit the cache")
	}
	if repo.loads != 1 {
		t.Errorf("expected 1 load, got %d", repo.loads)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Execute(ctx, GetStatisticsInput{Range: valueobject.TimeRangeMonth}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.loads != 2 {
		t.Errorf("expected 2 loads after invalidation, got %d", repo.loads)
	}
}

func TestGetStatisticsUseCase_CustomEndWithinSameMinute(t *testing.T) {
	repo := &fakeTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn(40, entity.TransactionTypeExpense, foodID, time.Date(2025, time.January, 10, 12, 0, 30, 0, time.UTC)),
		},
	}
	uc := NewGetStatisticsUseCase(repo, &fakeCategoryRepository{}, newMapCache(), fixedClock{now: date(2025, time.January, 20, 12)}, nil)
	ctx := context.Background()

	start := date(2025, time.January, 10, 0)
	earlyEnd := time.Date(2025, time.January, 10, 12, 0, 10, 0, time.UTC)
	lateEnd := time.Date(2025, time.January, 10, 12, 0, 50, 0, time.UTC)

	first, err := uc.Execute(ctx, GetStatisticsInput{Range: valueobject.TimeRangeCustom, CustomStart: &start, CustomEnd: &earlyEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, GetStatisticsInput{Range: valueobject.TimeRangeCustom, CustomStart: &start, CustomEnd: &lateEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Statistics.TotalAmount.IsZero() {
		t.Errorf("expected first total 0, got %s", first.Statistics.TotalAmount)
	}
	if second.Cached {
		t.Errorf("expected second call to miss the cache")
	}
	if !second.Statistics.TotalAmount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected second total 40, got %s", second.Statistics.TotalAmount)
	}
	if !second.Statistics.EndDate.Equal(lateEnd) {
		t.Errorf("expected end date %v, got %v", lateEnd, second.Statistics.EndDate)
	}
}

func TestComparePeriodsUseCase_CustomEndWithinSameMinute(t *testing.T) {
	repo := &fakeTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn(40, entity.TransactionTypeExpense, foodID, time.Date(2025, time.January, 10, 12, 0, 30, 0, time.UTC)),
		},
	}
	uc := NewComparePeriodsUseCase(repo, &fakeCategoryRepository{}, newMapCache(), fixedClock{now: date(2025, time.January, 20, 12)}, nil)
	ctx := context.Background()

	start := date(2025, time.January, 10, 0)
	earlyEnd := time.Date(2025, time.January, 10, 12, 0, 10, 0, time.UTC)
	lateEnd := time.Date(2025, time.January, 10, 12, 0, 50, 0, time.UTC)

	if _, err := uc.Execute(ctx, ComparePeriodsInput{Range: valueobject.TimeRangeCustom, CustomStart: &start, CustomEnd: &earlyEnd}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := uc.Execute(ctx, ComparePeriodsInput{Range: valueobject.TimeRangeCustom, CustomStart: &start, CustomEnd: &lateEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Cached {
		t.Errorf("expected second comparison to miss the cache")
	}
	if !output.Comparison.Current.TotalAmount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected current total 40, got %s", output.Comparison.Current.TotalAmount)
	}
}

func TestComparePeriodsUseCase_Execute(t *testing.T) {
	repo := &fakeTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn(40, entity.TransactionTypeExpense, foodID, date(2025, time.January, 9, 9)),
			newTxn(60, entity.TransactionTypeExpense, foodID, date(2025, time.January, 10, 9)),
			newTxn(80, entity.TransactionTypeExpense, foodID, date(2025, time.January, 8, 9)),
		},
	}
	uc := NewComparePeriodsUseCase(repo, &fakeCategoryRepository{}, newMapCache(), fixedClock{now: date(2025, time.January, 10, 12)}, nil)

	output, err := uc.Execute(context.Background(), ComparePeriodsInput{Range: valueobject.TimeRangeDay})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Day resolved at 12:00 spans 12 hours, so the previous window is Jan 9 12:00 onwards.
	comparison := output.Comparison
	if !comparison.Current.TotalAmount.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected current total 60, got %s", comparison.Current.TotalAmount)
	}
	if !comparison.Previous.TotalAmount.IsZero() {
		t.Errorf("expected previous total 0, got %s", comparison.Previous.TotalAmount)
	}
	if comparison.ChangePercent.TotalAmount != 100 {
		t.Errorf("expected 100%% change, got %v", comparison.ChangePercent.TotalAmount)
	}
}

func TestGetDataRangeUseCase_Execute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		output, err := NewGetDataRangeUseCase(&fakeTransactionRepository{}).Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.HasData || output.OldestDate != nil || output.NewestDate != nil {
			t.Errorf("expected no data, got %+v", output)
		}
	})

	t.Run("with transactions", func(t *testing.T) {
		repo := &fakeTransactionRepository{
			transactions: []*entity.Transaction{
				newTxn(1, entity.TransactionTypeExpense, foodID, date(2025, time.March, 3, 9)),
				newTxn(1, entity.TransactionTypeExpense, foodID, date(2024, time.July, 1, 9)),
				newTxn(1, entity.TransactionTypeExpense, foodID, date(2025, time.May, 30, 9)),
			},
		}

		output, err := NewGetDataRangeUseCase(repo).Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.HasData || output.TotalTransactions != 3 {
			t.Errorf("expected 3 transactions, got %+v", output)
		}
		if !output.OldestDate.Equal(date(2024, time.July, 1, 9)) {
			t.Errorf("expected oldest 2024-07-01, got %v", output.OldestDate)
		}
		if !output.NewestDate.Equal(date(2025, time.May, 30, 9)) {
			t.Errorf("expected newest 2025-05-30, got %v", output.NewestDate)
		}
	})
}
