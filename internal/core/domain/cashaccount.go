package domain

import "github.com/shopspring/decimal"

// AccountType classifies a cash account by where the money physically sits.
type AccountType string

const (
	AccountBank   AccountType = "bank"
	AccountCash   AccountType = "cash"
	AccountMobile AccountType = "mobile"
)

// CashAccount holds a running balance reconciled incrementally: every balance
// mutation is paired, in the same atomic unit, with the Transaction that
// justifies it. The balance therefore always equals the sum of signed effects
// of all committed transactions referencing the account.
type CashAccount struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"` // unique
	AccountType   AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
