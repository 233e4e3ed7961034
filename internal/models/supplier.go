package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a row in the suppliers table.
type Supplier struct {
	SupplierID   string
	Name         string
	Contact      string
	PaymentTerms int
	Address      string
	Notes        string
	IsActive     bool
	AuditFields
}

// BusinessOrder is a row in the business_orders table. Related transaction
// links live in the business_order_transactions join table.
type BusinessOrder struct {
	BusinessOrderID string
	Name            string
	SupplierID      string
	OrderDate       time.Time
	Due             decimal.Decimal
	Payment         decimal.Decimal
	Total           decimal.Decimal
	Discount        decimal.Decimal
	Quantity        int64
	AuditFields
}

// User is a row in the users table.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	Role         string
	AuditFields
}
