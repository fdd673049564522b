package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DefaultCategory describes a category created on first start.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// DefaultCategories is the starter set offered to a new ledger.
var DefaultCategories = []DefaultCategory{
	{Name: "Food", Color: "#F97316", Icon: "utensils", Type: entity.CategoryTypeExpense},
	{Name: "Transport", Color: "#3B82F6", Icon: "car", Type: entity.CategoryTypeExpense},
	{Name: "Housing", Color: "#8B5CF6", Icon: "home", Type: entity.CategoryTypeExpense},
	{Name: "Utilities", Color: "#06B6D4", Icon: "bolt", Type: entity.CategoryTypeExpense},
	{Name: "Health", Color: "#EF4444", Icon: "heart", Type: entity.CategoryTypeExpense},
	{Name: "Entertainment", Color: "#EC4899", Icon: "film", Type: entity.CategoryTypeExpense},
	{Name: "Shopping", Color: "#F59E0B", Icon: "shopping-bag", Type: entity.CategoryTypeExpense},
	{Name: "Salary", Color: "#22C55E", Icon: "briefcase", Type: entity.CategoryTypeIncome},
	{Name: "Other Income", Color: "#10B981", Icon: "coins", Type: entity.CategoryTypeIncome},
}

// SeedDefaultsOutput represents the output of seeding default categories.
type SeedDefaultsOutput struct {
	Created []*entity.Category
	Skipped int
}

// SeedDefaultsUseCase creates the default categories that do not exist yet.
type SeedDefaultsUseCase struct {
	categoryRepo adapter.CategoryRepository
	defaults     []DefaultCategory
}

// NewSeedDefaultsUseCase creates a new SeedDefaultsUseCase instance.
func NewSeedDefaultsUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultsUseCase {
	return &SeedDefaultsUseCase{
		categoryRepo: categoryRepo,
		defaults:     DefaultCategories,
	}
}

// Execute seeds missing default categories. Existing names are matched
// case-insensitively and left untouched, so repeated runs are no-ops.
func (uc *SeedDefaultsUseCase) Execute(ctx context.Context) (*SeedDefaultsOutput, error) {
	existing, err := uc.categoryRepo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	names := make(map[string]struct{}, len(existing))
	for _, cat := range existing {
		names[strings.ToLower(cat.Name)] = struct{}{}
	}

	output := &SeedDefaultsOutput{Created: make([]*entity.Category, 0, len(uc.defaults))}
	for _, def := range uc.defaults {
		key := strings.ToLower(def.Name)
		if _, ok := names[key]; ok {
			output.Skipped++
			continue
		}

		category := entity.NewCategory(def.Name, def.Color, def.Icon, def.Type)
		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", def.Name, err)
		}
		names[key] = struct{}{}
		output.Created = append(output.Created, category)
	}

	if len(output.Created) > 0 {
		slog.InfoContext(ctx, "Seeded default categories", "created", len(output.Created), "skipped", output.Skipped)
	}

	return output, nil
}
