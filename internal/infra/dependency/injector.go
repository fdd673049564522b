// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"

	redisPingTimeout = 2 * time.Second
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Location     *time.Location
	CacheBackend string
	CacheManager *cache.Manager

	TransactionRepo *persistence.CachedTransactionRepository
	CategoryRepo    *persistence.CachedCategoryRepository
	StatsCache      adapter.StatisticsCache

	GetStatistics     *statistics.GetStatisticsUseCase
	ComparePeriods    *statistics.ComparePeriodsUseCase
	GetDataRange      *statistics.GetDataRangeUseCase
	ListTransactions  *transaction.ListTransactionsUseCase
	CreateTransaction *transaction.CreateTransactionUseCase
	ListCategories    *category.ListCategoriesUseCase
	SeedDefaults      *category.SeedDefaultsUseCase

	redisClient *redis.Client
}

// NewInjector creates a new dependency injector with all dependencies wired.
// clock may be nil, in which case the wall clock in the configured timezone is used.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, clock adapter.Clock) (*Injector, error) {
	loc, err := cfg.Stats.Location()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = adapter.SystemClock{Location: loc}
	}

	inj := &Injector{
		Config:       cfg,
		DB:           db,
		Location:     loc,
		CacheManager: cache.NewManager(),
	}

	// Snapshot caches sit in front of the gorm repositories.
	txSnapshots, err := cache.NewLRU[[]*entity.Transaction](1, cfg.Cache.SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction snapshot cache: %w", err)
	}
	catSnapshots, err := cache.NewLRU[[]*entity.Category](1, cfg.Cache.SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create category snapshot cache: %w", err)
	}
	inj.CacheManager.Register(txSnapshots, catSnapshots)

	inj.TransactionRepo = persistence.NewCachedTransactionRepository(persistence.NewTransactionRepository(db), txSnapshots)
	inj.CategoryRepo = persistence.NewCachedCategoryRepository(persistence.NewCategoryRepository(db), catSnapshots)

	if err := inj.initStatisticsCache(ctx); err != nil {
		return nil, err
	}

	aggregator := statistics.NewAggregator(cfg.Stats.UnknownCategoryName)

	// Statistics use cases
	inj.GetStatistics = statistics.NewGetStatisticsUseCase(inj.TransactionRepo, inj.CategoryRepo, inj.StatsCache, clock, aggregator)
	inj.ComparePeriods = statistics.NewComparePeriodsUseCase(inj.TransactionRepo, inj.CategoryRepo, inj.StatsCache, clock, aggregator)
	inj.GetDataRange = statistics.NewGetDataRangeUseCase(inj.TransactionRepo)

	// Transaction use cases
	inj.ListTransactions = transaction.NewListTransactionsUseCase(inj.TransactionRepo, inj.CategoryRepo, clock)
	inj.CreateTransaction = transaction.NewCreateTransactionUseCase(inj.TransactionRepo, inj.CategoryRepo, inj.StatsCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(inj.TransactionRepo, inj.CategoryRepo, inj.StatsCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(inj.TransactionRepo, inj.StatsCache)

	// Category use cases
	inj.ListCategories = category.NewListCategoriesUseCase(inj.CategoryRepo, inj.TransactionRepo, clock)
	createCategoryUseCase := category.NewCreateCategoryUseCase(inj.CategoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(inj.CategoryRepo, inj.StatsCache)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(inj.CategoryRepo)
	inj.SeedDefaults = category.NewSeedDefaultsUseCase(inj.CategoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func(ctx context.Context) bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.PingContext(ctx) == nil
	}, inj.CacheBackend)

	statisticsController := controller.NewStatisticsController(
		inj.GetStatistics,
		inj.ComparePeriods,
		inj.GetDataRange,
		loc,
	)

	transactionController := controller.NewTransactionController(
		inj.ListTransactions,
		inj.CreateTransaction,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		loc,
	)

	categoryController := controller.NewCategoryController(
		inj.ListCategories,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		loc,
	)

	inj.Router = router.NewRouter(healthController, statisticsController, transactionController, categoryController)

	return inj, nil
}

// initStatisticsCache picks Redis when enabled and reachable, the in-process LRU otherwise.
func (i *Injector) initStatisticsCache(ctx context.Context) error {
	if i.Config.Redis.Enabled {
		client, err := newRedisClient(&i.Config.Redis)
		if err == nil {
			redisCache := cache.NewRedisStatisticsCache(client, i.Config.Redis.KeyPrefix, i.Config.Cache.StatisticsTTL)

			pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
			err = redisCache.Ping(pingCtx)
			cancel()

			if err == nil {
				slog.InfoContext(ctx, "Using Redis statistics cache", "prefix", i.Config.Redis.KeyPrefix)
				i.redisClient = client
				i.StatsCache = redisCache
				i.CacheBackend = CacheBackendRedis
				return nil
			}
			_ = client.Close()
		}
		slog.WarnContext(ctx, "Redis unavailable, falling back to in-memory statistics cache", "error", err)
	}

	memoryCache, err := cache.NewMemoryStatisticsCache(i.Config.Cache.MaxEntries, i.Config.Cache.StatisticsTTL)
	if err != nil {
		return fmt.Errorf("failed to create statistics cache: %w", err)
	}
	i.CacheManager.Register(memoryCache)
	i.StatsCache = memoryCache
	i.CacheBackend = CacheBackendMemory
	return nil
}

func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}

// StartBackground starts periodic cache cleanup.
func (i *Injector) StartBackground() {
	i.CacheManager.StartCleanup(i.Config.Cache.CleanupInterval)
}

// Close stops background work and releases the Redis client.
func (i *Injector) Close() error {
	i.CacheManager.Stop()
	if i.redisClient != nil {
		if err := i.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}
