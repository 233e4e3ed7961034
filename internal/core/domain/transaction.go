package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the ledger direction of a cash transaction.
type TransactionType string

const (
	TxnIncome   TransactionType = "income"
	TxnExpense  TransactionType = "expense"
	TxnTransfer TransactionType = "transfer"
)

// Transaction is one committed cash-ledger entry owned by exactly one
// CashAccount. Amount is always positive; the sign of its balance effect is
// derived from the type (income +, expense -, transfer legs signed per leg).
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	TxnType       TransactionType `json:"type"`
	Category      string          `json:"category"` // e.g. "inventory_purchase", "sales_revenue"
	Amount        decimal.Decimal `json:"amount"`
	TxnDate       time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	IsRecurring   bool            `json:"isRecurring"`
	AccountID     string          `json:"cashAccount"`                // FK -> cash_accounts, required
	OrderID       string          `json:"relatedOrder,omitempty"`     // FK -> orders, optional back-reference
	ProductID     string          `json:"relatedInventory,omitempty"` // FK -> products, optional back-reference
	TransferID    string          `json:"transferID,omitempty"`       // links the two legs of one transfer
	TransferOut   bool            `json:"transferOut,omitempty"`      // marks the source leg of a transfer pair
	AuditFields
}

// Delta returns the signed effect this transaction has on its owning
// account's balance.
func (t Transaction) Delta() decimal.Decimal {
	switch t.TxnType {
	case TxnIncome:
		return t.Amount
	case TxnTransfer:
		if t.TransferOut {
			return t.Amount.Neg()
		}
		return t.Amount
	default:
		return t.Amount.Neg()
	}
}

// CashFlowSummaryRow is one row of the read-only type aggregation.
type CashFlowSummaryRow struct {
	TxnType     TransactionType `json:"type"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}
