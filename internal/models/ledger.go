package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount is a row in the cash_accounts table.
type CashAccount struct {
	AccountID     string
	Name          string
	AccountType   string
	Balance       decimal.Decimal
	Currency      string
	AccountNumber string
	Institution   string
	IsActive      bool
	AuditFields
}

// Transaction is a row in the transactions table.
type Transaction struct {
	TransactionID string
	TxnType       string
	Category      string
	Amount        decimal.Decimal
	TxnDate       time.Time
	Description   string
	PaymentMethod string
	IsRecurring   bool
	AccountID     string
	OrderID       string
	ProductID     string
	TransferID    string
	TransferOut   bool
	AuditFields
}
