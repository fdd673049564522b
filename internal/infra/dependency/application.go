package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// Application owns the database connection and the wired dependencies.
type Application struct {
	*Injector
	Database *db.Database
}

// NewApplication opens and migrates the database, then wires every dependency.
func NewApplication(ctx context.Context, cfg *config.Config, clock adapter.Clock) (*Application, error) {
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		_ = database.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "Database migrations completed successfully")

	inj, err := NewInjector(ctx, cfg, database.DB(), clock)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}

	return &Application{Injector: inj, Database: database}, nil
}

// SeedDefaultCategories creates the default categories that do not exist yet.
func (a *Application) SeedDefaultCategories(ctx context.Context) error {
	output, err := a.SeedDefaults.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	slog.InfoContext(ctx, "Default categories checked",
		"created", len(output.Created),
		"skipped", output.Skipped,
	)
	return nil
}

// Close releases the injector resources and the database connection.
func (a *Application) Close() error {
	return errors.Join(a.Injector.Close(), a.Database.Close())
}
