package dto

import (
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for posting a cash transaction.
type CreateTransactionRequest struct {
	TxnType       string          `json:"type" binding:"required,oneof=income expense"`
	Category      string          `json:"category" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dpositive"`
	TxnDate       *time.Time      `json:"date,omitempty"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	IsRecurring   bool            `json:"isRecurring"`
	AccountID     string          `json:"cashAccount" binding:"required"`
	OrderID       string          `json:"relatedOrder,omitempty"`
	ProductID     string          `json:"relatedInventory,omitempty"`
}

// UpdateTransactionRequest is a partial-update patch for an existing
// transaction; only present fields are applied. Changing amount, type or
// account re-derives and re-applies balance deltas.
type UpdateTransactionRequest struct {
	TxnType       *string          `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	Category      *string          `json:"category,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty" binding:"omitempty,dpositive"`
	TxnDate       *time.Time       `json:"date,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	IsRecurring   *bool            `json:"isRecurring,omitempty"`
	AccountID     *string          `json:"cashAccount,omitempty"`
}

// ListTransactionsParams carries the read-side transaction filters.
type ListTransactionsParams struct {
	TxnType   string           `form:"type"`
	Category  string           `form:"category"`
	StartDate *time.Time       `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time       `form:"endDate" time_format:"2006-01-02"`
	MinAmount *decimal.Decimal `form:"minAmount"`
	MaxAmount *decimal.Decimal `form:"maxAmount"`
	Limit     int              `form:"limit"`
	Offset    int              `form:"offset"`
}

// SummaryParams bounds the cash-flow summary aggregation.
type SummaryParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// TransactionResponse is the wire representation of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	TxnType       string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	TxnDate       time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	IsRecurring   bool            `json:"isRecurring"`
	AccountID     string          `json:"cashAccount"`
	OrderID       string          `json:"relatedOrder,omitempty"`
	ProductID     string          `json:"relatedInventory,omitempty"`
	TransferID    string          `json:"transferID,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its wire form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		TxnType:       string(t.TxnType),
		Category:      t.Category,
		Amount:        t.Amount,
		TxnDate:       t.TxnDate,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		IsRecurring:   t.IsRecurring,
		AccountID:     t.AccountID,
		OrderID:       t.OrderID,
		ProductID:     t.ProductID,
		TransferID:    t.TransferID,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
