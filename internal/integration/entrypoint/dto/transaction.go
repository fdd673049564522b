package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or a decimal string.
type CreateTransactionRequest struct {
	Type       string          `json:"type" binding:"required,oneof=expense income transfer"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date" binding:"required"`
	CategoryID string          `json:"category_id" binding:"required"`
	Note       string          `json:"note,omitempty" binding:"omitempty,max=500"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Type       *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income transfer"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Date       *string          `json:"date,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	Note       *string          `json:"note,omitempty" binding:"omitempty,max=500"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID         string                       `json:"id"`
	Type       string                       `json:"type"`
	Amount     string                       `json:"amount"`
	Date       time.Time                    `json:"date"`
	CategoryID string                       `json:"category_id"`
	Category   *TransactionCategoryResponse `json:"category,omitempty"`
	Note       string                       `json:"note"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions      []TransactionResponse     `json:"transactions"`
	Totals            TransactionTotalsResponse `json:"totals"`
	ActiveFilterCount int                       `json:"active_filter_count"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:         txn.ID.String(),
		Type:       string(txn.Type),
		Amount:     txn.Amount.StringFixed(2),
		Date:       txn.Date,
		CategoryID: txn.CategoryID.String(),
		Note:       txn.Note,
		CreatedAt:  txn.CreatedAt,
		UpdatedAt:  txn.UpdatedAt,
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.StringFixed(2),
			ExpenseTotal: output.Totals.ExpenseTotal.StringFixed(2),
			NetTotal:     output.Totals.NetTotal.StringFixed(2),
		},
		ActiveFilterCount: output.ActiveFilterCount,
	}
}
