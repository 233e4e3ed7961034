package models

import "github.com/shopspring/decimal"

// Order is a row in the orders table.
type Order struct {
	OrderID       string
	OrderType     string
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	TransactionID string
	ConsignmentID string
	TrackingCode  string
	AuditFields
}

// OrderItem is a row in the order_items table; rows cascade-delete with the order.
type OrderItem struct {
	OrderID   string
	LineNo    int
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}
