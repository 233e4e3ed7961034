package domain

import "github.com/shopspring/decimal"

// StockAction identifies how AdjustStock mutates a product's stock count.
type StockAction string

const (
	StockIncrement StockAction = "increment"
	StockDecrement StockAction = "decrement"
	StockSet       StockAction = "set"
)

// Product is an inventory item. Stock is kept as an integer count and must
// never go negative; decrements are rejected rather than clamped.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"` // unique, immutable after creation
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	ReorderLevel *int64          `json:"reorderLevel,omitempty"`
	CategoryID   string          `json:"categoryID,omitempty"` // FK -> categories, optional
	SupplierID   string          `json:"supplierID,omitempty"` // FK -> suppliers, optional
	Description  string          `json:"description,omitempty"`
	AuditFields
}

// Category groups products for filtering and reporting.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AuditFields
}
