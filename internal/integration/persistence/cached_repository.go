package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/cache"
)

const snapshotKey = "snapshot"

// snapshotGuard serves a whole-table snapshot from an LRU and drops it on writes.
// A load that races with a write never repopulates the cache with stale data.
type snapshotGuard[T any] struct {
	mu         sync.Mutex
	generation uint64
	snapshots  *cache.LRU[[]T]
}

func (g *snapshotGuard[T]) load(ctx context.Context, loader func(context.Context) ([]T, error)) ([]T, error) {
	if snapshot, ok := g.snapshots.Get(snapshotKey); ok {
		return snapshot, nil
	}

	g.mu.Lock()
	generation := g.generation
	g.mu.Unlock()

	snapshot, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	if generation == g.generation {
		g.snapshots.Set(snapshotKey, snapshot)
	}
	g.mu.Unlock()

	return snapshot, nil
}

func (g *snapshotGuard[T]) invalidate() {
	g.mu.Lock()
	g.generation++
	g.snapshots.Delete(snapshotKey)
	g.mu.Unlock()
}

// CachedTransactionRepository decorates a TransactionRepository with a snapshot cache.
type CachedTransactionRepository struct {
	inner adapter.TransactionRepository
	guard *snapshotGuard[*entity.Transaction]
}

// NewCachedTransactionRepository creates a new CachedTransactionRepository.
func NewCachedTransactionRepository(inner adapter.TransactionRepository, snapshots *cache.LRU[[]*entity.Transaction]) *CachedTransactionRepository {
	return &CachedTransactionRepository{
		inner: inner,
		guard: &snapshotGuard[*entity.Transaction]{snapshots: snapshots},
	}
}

// LoadTransactions returns the cached snapshot, loading it on a miss.
func (r *CachedTransactionRepository) LoadTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	return r.guard.load(ctx, r.inner.LoadTransactions)
}

// FindByID retrieves a transaction by its ID.
func (r *CachedTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.inner.FindByID(ctx, id)
}

// Create creates a transaction and drops the snapshot.
func (r *CachedTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	defer r.guard.invalidate()
	return r.inner.Create(ctx, transaction)
}

// Update updates a transaction and drops the snapshot.
func (r *CachedTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	defer r.guard.invalidate()
	return r.inner.Update(ctx, transaction)
}

// Delete deletes a transaction and drops the snapshot.
func (r *CachedTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.guard.invalidate()
	return r.inner.Delete(ctx, id)
}

// Invalidate drops the snapshot so the next load reads through.
func (r *CachedTransactionRepository) Invalidate() {
	r.guard.invalidate()
}

// CachedCategoryRepository decorates a CategoryRepository with a snapshot cache.
type CachedCategoryRepository struct {
	inner adapter.CategoryRepository
	guard *snapshotGuard[*entity.Category]
}

// NewCachedCategoryRepository creates a new CachedCategoryRepository.
func NewCachedCategoryRepository(inner adapter.CategoryRepository, snapshots *cache.LRU[[]*entity.Category]) *CachedCategoryRepository {
	return &CachedCategoryRepository{
		inner: inner,
		guard: &snapshotGuard[*entity.Category]{snapshots: snapshots},
	}
}

// LoadCategories returns the cached snapshot, loading it on a miss.
func (r *CachedCategoryRepository) LoadCategories(ctx context.Context) ([]*entity.Category, error) {
	return r.guard.load(ctx, r.inner.LoadCategories)
}

// FindByID retrieves a category by its ID.
func (r *CachedCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.inner.FindByID(ctx, id)
}

// ExistsByName checks whether a category with the given name exists.
func (r *CachedCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.inner.ExistsByName(ctx, name, excludeID)
}

// CountTransactions counts transactions referencing the category.
func (r *CachedCategoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.inner.CountTransactions(ctx, id)
}

// Create creates a category and drops the snapshot.
func (r *CachedCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	defer r.guard.invalidate()
	return r.inner.Create(ctx, category)
}

// Update updates a category and drops the snapshot.
func (r *CachedCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	defer r.guard.invalidate()
	return r.inner.Update(ctx, category)
}

// Delete deletes a category and drops the snapshot.
func (r *CachedCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.guard.invalidate()
	return r.inner.Delete(ctx, id)
}

// Invalidate drops the snapshot so the next load reads through.
func (r *CachedCategoryRepository) Invalidate() {
	r.guard.invalidate()
}
