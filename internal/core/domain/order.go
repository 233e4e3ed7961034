package domain

import "github.com/shopspring/decimal"

// OrderType distinguishes purchase-side restocking from customer sales.
type OrderType string

const (
	OrderPurchase OrderType = "purchase"
	OrderSale     OrderType = "sale"
)

// OrderStatus is a one-way-biased state machine: processing moves into the
// terminal set {delivered, cancelled, completed, returned}. Returned is the
// only status with a compensating side effect (stock restoration) and may be
// entered from any prior status, once.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderCompleted  OrderStatus = "completed"
	OrderReturned   OrderStatus = "returned"
)

// PaymentStatus tracks how much of the order total has been settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
)

// OrderItem is one product/quantity/unit-price line embedded in an Order.
// Items are owned by value and are not separately addressable.
type OrderItem struct {
	ProductID string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is a purchase or sale order. Sale orders decrement line-item stock
// atomically with order persistence; the returned transition restores it.
type Order struct {
	OrderID       string          `json:"orderID"`
	OrderType     OrderType       `json:"orderType"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	TransactionID string          `json:"transaction,omitempty"`   // FK -> transactions, optional
	ConsignmentID string          `json:"consignmentID,omitempty"` // courier booking reference
	TrackingCode  string          `json:"trackingCode,omitempty"`
	AuditFields
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderProcessing, OrderDelivered, OrderCancelled, OrderCompleted, OrderReturned:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Returned is reachable from any other status; the remaining terminal
// statuses are reachable only from processing.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return false
	}
	if to == OrderReturned {
		return from != OrderReturned
	}
	return from == OrderProcessing && ValidStatus(to)
}

// StockApplied reports whether a sale order's create-time stock decrement is
// still in effect for the given status.
func StockApplied(orderType OrderType, status OrderStatus) bool {
	return orderType == OrderSale && status != OrderReturned
}
