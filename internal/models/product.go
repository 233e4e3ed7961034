package models

import "github.com/shopspring/decimal"

// Product is a row in the products table.
type Product struct {
	ProductID    string
	Name         string
	SKU          string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Stock        int64
	ReorderLevel *int64
	CategoryID   string
	SupplierID   string
	Description  string
	AuditFields
}

// Category is a row in the categories table.
type Category struct {
	CategoryID  string
	Name        string
	Description string
	AuditFields
}
