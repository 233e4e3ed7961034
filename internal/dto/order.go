package dto

import (
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one embedded line of a new order.
type OrderItemRequest struct {
	ProductID string          `json:"product" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required,dpositive"`
}

// ShippingInfo triggers a courier booking during order creation. Booking
// failure aborts the whole creation.
type ShippingInfo struct {
	RecipientName    string          `json:"recipientName" binding:"required"`
	RecipientPhone   string          `json:"recipientPhone" binding:"required"`
	RecipientAddress string          `json:"recipientAddress" binding:"required"`
	CODAmount        decimal.Decimal `json:"codAmount"`
	Note             string          `json:"note,omitempty"`
}

// CreateOrderRequest is the payload for creating a purchase or sale order.
type CreateOrderRequest struct {
	OrderType   string             `json:"orderType" binding:"required,oneof=purchase sale"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount decimal.Decimal    `json:"totalAmount" binding:"required,dpositive"`
	Shipping    *ShippingInfo      `json:"shipping,omitempty"`
}

// UpdateOrderRequest patches status and/or payment status; only present
// fields are applied.
type UpdateOrderRequest struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=processing delivered cancelled completed returned"`
	PaymentStatus *string `json:"paymentStatus,omitempty" binding:"omitempty,oneof=pending paid partial"`
}

// ListOrdersParams carries the read-side order filters.
type ListOrdersParams struct {
	OrderType string `form:"orderType"`
	Status    string `form:"status"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// OrderItemResponse is one resolved line of an order.
type OrderItemResponse struct {
	ProductID   string           `json:"product"`
	ProductName string           `json:"productName,omitempty"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Resolved    *ProductResponse `json:"productDetails,omitempty"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	OrderID       string               `json:"orderID"`
	OrderType     string               `json:"orderType"`
	Items         []OrderItemResponse  `json:"items"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus"`
	Transaction   *TransactionResponse `json:"transaction,omitempty"`
	ConsignmentID string               `json:"consignmentID,omitempty"`
	TrackingCode  string               `json:"trackingCode,omitempty"`
}

// ToOrderResponse converts a domain.Order, optionally attaching resolved
// product details and the linked transaction.
func ToOrderResponse(o *domain.Order, products map[string]domain.Product, txn *domain.Transaction) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if p, ok := products[item.ProductID]; ok {
			resolved := ToProductResponse(&p)
			items[i].ProductName = p.Name
			items[i].Resolved = &resolved
		}
	}

	resp := OrderResponse{
		OrderID:       o.OrderID,
		OrderType:     string(o.OrderType),
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		ConsignmentID: o.ConsignmentID,
		TrackingCode:  o.TrackingCode,
	}
	if txn != nil {
		t := ToTransactionResponse(txn)
		resp.Transaction = &t
	}
	return resp
}
