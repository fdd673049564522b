package statistics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// Accepted layouts for custom range bounds.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// ResolveTimeRange parses a range name. An empty name resolves to the default range.
func ResolveTimeRange(name string) (valueobject.TimeRange, error) {
	if strings.TrimSpace(name) == "" {
		return valueobject.DefaultTimeRange, nil
	}

	r, ok := valueobject.ParseTimeRange(name)
	if !ok {
		return "", domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidTimeRange,
			fmt.Sprintf("unknown time range %q", name),
			domainerror.ErrInvalidTimeRange,
		)
	}
	return r, nil
}

// ParseBound parses a custom range bound given as YYYY-MM-DD or RFC3339.
// Date-only values are interpreted in loc; as an end bound they cover the whole day.
// An empty value yields nil.
func ParseBound(value string, loc *time.Location, isEnd bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		if isEnd {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, nil
	}

	t, err := time.Parse(dateTimeLayout, value)
	if err != nil {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			fmt.Sprintf("invalid date %q", value),
			domainerror.ErrInvalidDateFormat,
		)
	}
	t = t.In(loc)
	return &t, nil
}

// validateSnapshot rejects transactions that have a zero date or a non-positive amount.
func validateSnapshot(transactions []*entity.Transaction) error {
	for _, txn := range transactions {
		if txn == nil {
			return domainerror.NewStatisticsError(
				domainerror.ErrCodeInvalidSnapshot,
				"snapshot contains a nil transaction",
				domainerror.ErrInvalidSnapshot,
			)
		}
		if txn.Date.IsZero() {
			return domainerror.NewStatisticsError(
				domainerror.ErrCodeInvalidSnapshot,
				fmt.Sprintf("transaction %s has no date", txn.ID),
				domainerror.ErrInvalidSnapshot,
			)
		}
		if !txn.Amount.IsPositive() {
			return domainerror.NewStatisticsError(
				domainerror.ErrCodeInvalidSnapshot,
				fmt.Sprintf("transaction %s has non-positive amount %s", txn.ID, txn.Amount),
				domainerror.ErrInvalidSnapshot,
			)
		}
		if !txn.Type.IsValid() {
			return domainerror.NewStatisticsError(
				domainerror.ErrCodeInvalidSnapshot,
				fmt.Sprintf("transaction %s has unknown type %q", txn.ID, txn.Type),
				domainerror.ErrInvalidSnapshot,
			)
		}
	}
	return nil
}

// loadSnapshot reads the full transaction and category snapshot from the repositories.
func loadSnapshot(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) ([]*entity.Transaction, []*entity.Category, error) {
	transactions, err := transactionRepo.LoadTransactions(ctx)
	if err != nil {
		return nil, nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeStatisticsInternalError,
			"failed to load transactions",
			err,
		)
	}

	categories, err := categoryRepo.LoadCategories(ctx)
	if err != nil {
		return nil, nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeStatisticsInternalError,
			"failed to load categories",
			err,
		)
	}

	if err := validateSnapshot(transactions); err != nil {
		return nil, nil, err
	}

	return transactions, categories, nil
}
