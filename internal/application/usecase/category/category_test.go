package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type memoryCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
	usage      map[uuid.UUID]int64
}

func newMemoryCategoryRepository(categories ...*entity.Category) *memoryCategoryRepository {
	repo := &memoryCategoryRepository{
		categories: make(map[uuid.UUID]*entity.Category),
		usage:      make(map[uuid.UUID]int64),
	}
	for _, cat := range categories {
		repo.categories[cat.ID] = cat
	}
	return repo
}

func (r *memoryCategoryRepository) LoadCategories(_ context.Context) ([]*entity.Category, error) {
	result := make([]*entity.Category, 0, len(r.categories))
	for _, cat := range r.categories {
		result = append(result, cat)
	}
	return result, nil
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	cat, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return cat, nil
}

func (r *memoryCategoryRepository) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for _, cat := range r.categories {
		if excludeID != nil && cat.ID == *excludeID {
			continue
		}
		if strings.EqualFold(cat.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryCategoryRepository) CountTransactions(_ context.Context, id uuid.UUID) (int64, error) {
	return r.usage[id], nil
}

func (r *memoryCategoryRepository) Create(_ context.Context, cat *entity.Category) error {
	r.categories[cat.ID] = cat
	return nil
}

func (r *memoryCategoryRepository) Update(_ context.Context, cat *entity.Category) error {
	r.categories[cat.ID] = cat
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

type staticTransactionRepository struct {
	transactions []*entity.Transaction
}

func (r *staticTransactionRepository) LoadTransactions(_ context.Context) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *staticTransactionRepository) FindByID(_ context.Context, _ uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *staticTransactionRepository) Create(_ context.Context, _ *entity.Transaction) error {
	return nil
}

func (r *staticTransactionRepository) Update(_ context.Context, _ *entity.Transaction) error {
	return nil
}

func (r *staticTransactionRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func assertCategoryCode(t *testing.T, err error, expected domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CategoryError, got %v", err)
	}
	if catErr.Code != expected {
		t.Errorf("expected code %s, got %s", expected, catErr.Code)
	}
}

func TestCreateCategoryUseCase_Execute(t *testing.T) {
	existing := entity.NewCategory("Food", "#FF0000", "utensils", entity.CategoryTypeExpense)

	tests := []struct {
		name         string
		input        CreateCategoryInput
		expectedCode domainerror.CategoryErrorCode
	}{
		{
			name:  "applies defaults",
			input: CreateCategoryInput{Name: " Travel ", Type: entity.CategoryTypeExpense},
		},
		{
			name:         "empty name",
			input:        CreateCategoryInput{Name: "   ", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeMissingCategoryFields,
		},
		{
			name:         "name too long",
			input:        CreateCategoryInput{Name: strings.Repeat("x", MaxCategoryNameLength+1), Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeCategoryNameTooLong,
		},
		{
			name:         "invalid color",
			input:        CreateCategoryInput{Name: "Travel", Color: "blue", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeInvalidColorFormat,
		},
		{
			name:         "invalid type",
			input:        CreateCategoryInput{Name: "Travel", Type: "transfer"},
			expectedCode: domainerror.ErrCodeInvalidCategoryType,
		},
		{
			name:         "duplicate name",
			input:        CreateCategoryInput{Name: "food", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeCategoryNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateCategoryUseCase(newMemoryCategoryRepository(existing))

			output, err := uc.Execute(context.Background(), tt.input)
			if tt.expectedCode != "" {
				assertCategoryCode(t, err, tt.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Category.Name != "Travel" {
				t.Errorf("expected name Travel, got %q", output.Category.Name)
			}
			if output.Category.Color != entity.DefaultCategoryColor {
				t.Errorf("expected default color, got %s", output.Category.Color)
			}
			if output.Category.Icon != entity.DefaultCategoryIcon {
				t.Errorf("expected default icon, got %s", output.Category.Icon)
			}
		})
	}
}

func TestUpdateCategoryUseCase_Execute(t *testing.T) {
	food := entity.NewCategory("Food", "#FF0000", "utensils", entity.CategoryTypeExpense)
	transport := entity.NewCategory("Transport", "#00FF00", "car", entity.CategoryTypeExpense)
	repo := newMemoryCategoryRepository(food, transport)
	uc := NewUpdateCategoryUseCase(repo, nil)

	t.Run("rename", func(t *testing.T) {
		name := "Groceries"
		color := "#abc"
		output, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: food.ID, Name: &name, Color: &color})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != "Groceries" || output.Category.Color != "#abc" {
			t.Errorf("expected Groceries #abc, got %s %s", output.Category.Name, output.Category.Color)
		}
		if food.Name != "Food" {
			t.Errorf("expected original entity to be untouched, got %s", food.Name)
		}
	})

	t.Run("keeping own name is allowed", func(t *testing.T) {
		name := "Transport"
		if _, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: transport.ID, Name: &name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("name taken", func(t *testing.T) {
		name := "transport"
		_, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: food.ID, Name: &name})
		assertCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: uuid.New()})
		assertCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
	})
}

func TestDeleteCategoryUseCase_Execute(t *testing.T) {
	used := entity.NewCategory("Food", "#FF0000", "utensils", entity.CategoryTypeExpense)
	unused := entity.NewCategory("Travel", "#00FF00", "plane", entity.CategoryTypeExpense)
	repo := newMemoryCategoryRepository(used, unused)
	repo.usage[used.ID] = 3
	uc := NewDeleteCategoryUseCase(repo)

	_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: used.ID})
	assertCategoryCode(t, err, domainerror.ErrCodeCategoryInUse)
	if !errors.Is(err, domainerror.ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	output, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: unused.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Success {
		t.Errorf("expected success")
	}
	if _, ok := repo.categories[unused.ID]; ok {
		t.Errorf("expected category to be deleted")
	}

	_, err = uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: unused.ID})
	assertCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestListCategoriesUseCase_Execute(t *testing.T) {
	food := entity.NewCategory("Food", "#FF0000", "utensils", entity.CategoryTypeExpense)
	salary := entity.NewCategory("Salary", "#00FF00", "briefcase", entity.CategoryTypeIncome)
	txns := &staticTransactionRepository{
		transactions: []*entity.Transaction{
			{ID: uuid.New(), Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(12), Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), CategoryID: food.ID},
			{ID: uuid.New(), Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(8), Date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), CategoryID: food.ID},
			{ID: uuid.New(), Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(900), Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), CategoryID: salary.ID},
		},
	}
	uc := NewListCategoriesUseCase(newMemoryCategoryRepository(food, salary), txns, fixedClock{now: time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)})

	t.Run("filtered by type", func(t *testing.T) {
		expense := entity.CategoryTypeExpense
		output, err := uc.Execute(context.Background(), ListCategoriesInput{CategoryType: &expense})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(output.Categories))
		}
		if output.Categories[0].TransactionCount != 2 {
			t.Errorf("expected 2 transactions, got %d", output.Categories[0].TransactionCount)
		}
		if !output.Categories[0].PeriodTotal.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected total 20, got %s", output.Categories[0].PeriodTotal)
		}
	})

	t.Run("date window", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
		output, err := uc.Execute(context.Background(), ListCategoriesInput{StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, cat := range output.Categories {
			if cat.ID == food.ID && !cat.PeriodTotal.Equal(decimal.NewFromInt(12)) {
				t.Errorf("expected food total 12, got %s", cat.PeriodTotal)
			}
		}
	})

	t.Run("open end stops at the clock", func(t *testing.T) {
		start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
		output, err := uc.Execute(context.Background(), ListCategoriesInput{StartDate: &start})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, cat := range output.Categories {
			switch cat.ID {
			case food.ID:
				if cat.TransactionCount != 1 || !cat.PeriodTotal.Equal(decimal.NewFromInt(12)) {
					t.Errorf("expected food 1 transaction totalling 12, got %d totalling %s", cat.TransactionCount, cat.PeriodTotal)
				}
			case salary.ID:
				if cat.TransactionCount != 0 {
					t.Errorf("expected no salary transactions, got %d", cat.TransactionCount)
				}
			}
		}
	})
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestSeedDefaultsUseCase_Execute(t *testing.T) {
	repo := newMemoryCategoryRepository(entity.NewCategory("food", "#FF0000", "utensils", entity.CategoryTypeExpense))
	uc := NewSeedDefaultsUseCase(repo)

	first, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Created) != len(DefaultCategories)-1 {
		t.Errorf("expected %d created, got %d", len(DefaultCategories)-1, len(first.Created))
	}
	if first.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", first.Skipped)
	}

	second, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Created) != 0 {
		t.Errorf("expected no categories on second run, got %d", len(second.Created))
	}
	if len(repo.categories) != len(DefaultCategories) {
		t.Errorf("expected %d categories, got %d", len(DefaultCategories), len(repo.categories))
	}
}
