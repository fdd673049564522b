package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// LoadCategories returns every non-deleted category ordered by name.
	LoadCategories(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ExistsByName checks if a category with the given name exists, ignoring excludeID.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// CountTransactions counts non-deleted transactions referencing the category.
	CountTransactions(ctx context.Context, id uuid.UUID) (int64, error)

	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
