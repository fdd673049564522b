package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(now)
	return nil
}

// theFollowingCategoriesExist inserts categories. Columns: name, color, icon, type.
func theFollowingCategoriesExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, row := range rows {
		category := &model.CategoryModel{
			ID:        uuid.New(),
			Name:      row["name"],
			Color:     valueOr(row["color"], entity.DefaultCategoryColor),
			Icon:      valueOr(row["icon"], entity.DefaultCategoryIcon),
			Type:      valueOr(row["type"], string(entity.CategoryTypeExpense)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tc.db.DbConn.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category %q: %w", category.Name, err)
		}
		tc.categoryIDs[category.Name] = category.ID
	}
	return nil
}

// theFollowingTransactionsExist inserts transactions. Columns: type, amount, date,
// category, note. A category name that was never created gets a fresh id.
func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, row := range rows {
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}

		date, err := parseFixtureDate(row["date"])
		if err != nil {
			return err
		}

		categoryID, ok := tc.categoryIDs[row["category"]]
		if !ok {
			categoryID = uuid.New()
			tc.categoryIDs[row["category"]] = categoryID
		}

		txn := &model.TransactionModel{
			ID:         uuid.New(),
			Type:       valueOr(row["type"], string(entity.TransactionTypeExpense)),
			Amount:     amount,
			Date:       date,
			CategoryID: categoryID,
			Note:       row["note"],
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tc.db.DbConn.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		tc.transactionIDs = append(tc.transactionIDs, txn.ID)
	}
	return nil
}

func parseFixtureDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}

// tableRows maps every data row by the header cell values.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, fmt.Errorf("table has no header row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = strings.TrimSpace(cell.Value)
	}

	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, r := range table.Rows[1:] {
		row := make(map[string]string, len(header))
		for i, cell := range r.Cells {
			row[header[i]] = strings.TrimSpace(cell.Value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
