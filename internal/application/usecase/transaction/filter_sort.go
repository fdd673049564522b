package transaction

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// SortOrder is the ordering applied to a transaction listing.
type SortOrder string

const (
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
)

// DefaultSortOrder is used when no order is requested.
const DefaultSortOrder = SortNewest

// IsValid reports whether o is a known sort order.
func (o SortOrder) IsValid() bool {
	switch o {
	case SortHighest, SortLowest, SortNewest, SortOldest:
		return true
	default:
		return false
	}
}

// ParseSortOrder parses a sort order name. An empty name yields DefaultSortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortOrder, nil
	}

	order := SortOrder(s)
	if !order.IsValid() {
		return "", domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidSortOrder,
			fmt.Sprintf("unknown sort order %q", s),
			domainerror.ErrInvalidSortOrder,
		)
	}
	return order, nil
}

// Criteria narrows and orders a transaction listing.
type Criteria struct {
	TypeFilter         *entity.TransactionType
	SelectedCategories []uuid.UUID
	SortBy             SortOrder
}

// DefaultCriteria returns criteria with no filters, sorted newest first.
func DefaultCriteria() Criteria {
	return Criteria{SortBy: DefaultSortOrder}
}

// Reset clears every filter and restores the default sort order.
func (c *Criteria) Reset() {
	*c = DefaultCriteria()
}

// ActiveFilterCount returns how many criteria differ from DefaultCriteria:
// a type filter, a category selection and a sort order other than newest.
func (c Criteria) ActiveFilterCount() int {
	count := 0
	if c.TypeFilter != nil {
		count++
	}
	if len(c.SelectedCategories) > 0 {
		count++
	}
	if c.SortBy != "" && c.SortBy != DefaultSortOrder {
		count++
	}
	return count
}

// Apply filters transactions by type and category and sorts the result.
// The sort is stable. The input slice is left untouched.
func Apply(transactions []*entity.Transaction, criteria Criteria) []*entity.Transaction {
	result := statistics.FilterByCategories(
		statistics.FilterByType(transactions, criteria.TypeFilter),
		criteria.SelectedCategories,
	)

	slices.SortStableFunc(result, compareFunc(criteria.SortBy))
	return result
}

func compareFunc(order SortOrder) func(a, b *entity.Transaction) int {
	switch order {
	case SortHighest:
		return func(a, b *entity.Transaction) int { return b.Amount.Cmp(a.Amount) }
	case SortLowest:
		return func(a, b *entity.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortOldest:
		return func(a, b *entity.Transaction) int { return a.Date.Compare(b.Date) }
	default:
		return func(a, b *entity.Transaction) int { return b.Date.Compare(a.Date) }
	}
}
