// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}

// Transaction represents a recorded income, expense or transfer.
// Amount is always positive; Type carries the direction.
type Transaction struct {
	ID         uuid.UUID
	Type       TransactionType
	Amount     decimal.Decimal
	Date       time.Time // Point in time the transaction is attributed to
	CategoryID uuid.UUID
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	categoryID uuid.UUID,
	note string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		Type:       transactionType,
		Amount:     amount,
		Date:       date,
		CategoryID: categoryID,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TransactionTotals represents aggregated totals for a list of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
