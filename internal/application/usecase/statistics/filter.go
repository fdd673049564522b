package statistics

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// FilterByPeriod returns the transactions dated within [start, end].
// Inverted bounds yield an empty result.
func FilterByPeriod(transactions []*entity.Transaction, start, end time.Time) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		result = append(result, txn)
	}
	return result
}

// FilterByType narrows transactions to the given type. A nil type keeps everything.
func FilterByType(transactions []*entity.Transaction, transactionType *entity.TransactionType) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if transactionType != nil && txn.Type != *transactionType {
			continue
		}
		result = append(result, txn)
	}
	return result
}

// FilterByCategories narrows transactions to the given category set. An empty set keeps everything.
func FilterByCategories(transactions []*entity.Transaction, categoryIDs []uuid.UUID) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(transactions))
	if len(categoryIDs) == 0 {
		return append(result, transactions...)
	}

	selected := make(map[uuid.UUID]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		selected[id] = struct{}{}
	}

	for _, txn := range transactions {
		if _, ok := selected[txn.CategoryID]; ok {
			result = append(result, txn)
		}
	}
	return result
}
