package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a purchase-side counterparty.
type Supplier struct {
	SupplierID   string `json:"supplierID"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	PaymentTerms int    `json:"paymentTerms"` // days to pay
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// BusinessOrder is a purchase-side bookkeeping record linking a supplier and
// a set of related transactions. It does not itself drive balance mutation.
type BusinessOrder struct {
	BusinessOrderID     string          `json:"businessOrderID"`
	Name                string          `json:"name"`
	SupplierID          string          `json:"supplier"`
	OrderDate           time.Time       `json:"date"`
	Due                 decimal.Decimal `json:"due"`
	Payment             decimal.Decimal `json:"payment"`
	Total               decimal.Decimal `json:"total"`
	Discount            decimal.Decimal `json:"discount"`
	Quantity            int64           `json:"quantity"`
	RelatedTransactions []string        `json:"relatedTransactions"` // FK -> transactions
	AuditFields
}
