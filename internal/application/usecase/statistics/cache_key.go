package statistics

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// Cache key kinds.
const (
	cacheKindStatistics = "stats"
	cacheKindComparison = "compare"
)

// cacheKey builds the memoization key for a query. For ranges ending at now the
// end bound is truncated to the minute so repeated queries share an entry.
// Custom ranges keep their exact end bound.
func cacheKey(kind string, bounds valueobject.Bounds, transactionType *entity.TransactionType, categoryIDs []uuid.UUID) string {
	typePart := "all"
	if transactionType != nil {
		typePart = string(*transactionType)
	}

	ids := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	return strings.Join([]string{
		kind,
		string(bounds.Range),
		bounds.Start.UTC().Format(time.RFC3339Nano),
		endKey(bounds),
		typePart,
		strings.Join(ids, ","),
	}, "|")
}

func endKey(bounds valueobject.Bounds) string {
	if bounds.Range == valueobject.TimeRangeCustom {
		return bounds.End.UTC().Format(time.RFC3339Nano)
	}
	return bounds.End.Truncate(time.Minute).UTC().Format(time.RFC3339)
}
