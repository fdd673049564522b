package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
)

// loadConfig reads the environment and applies the global flag overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if databaseURL != "" {
		cfg.Database.URL = databaseURL
	}
	if timezone != "" {
		cfg.Stats.Timezone = timezone
	}
	// One-shot commands have no use for a shared cache.
	cfg.Redis.Enabled = false
	return cfg
}

func openApp(ctx context.Context) (*dependency.Application, error) {
	app, err := dependency.NewApplication(ctx, loadConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return app, nil
}

func parseTypeFlag(value string) (*entity.TransactionType, error) {
	if value == "" {
		return nil, nil
	}
	t := entity.TransactionType(strings.ToLower(value))
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid type %q: must be expense, income or transfer", value)
	}
	return &t, nil
}

func parseCategoryFlag(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
