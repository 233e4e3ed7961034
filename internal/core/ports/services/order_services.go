package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order with its items resolved against the
	// product catalog and its linked transaction, when any.
	GetOrderByID(ctx context.Context, orderID string) (*dto.OrderResponse, error)

	// ListOrders retrieves a filtered, paginated list of orders.
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error)
}

// OrderWriterSvc defines write operations for orders
type OrderWriterSvc interface {
	// CreateOrder persists a new order. Sale orders decrement line-item stock
	// in the same atomic unit; a shipping block books a courier consignment
	// first and aborts creation when booking fails.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)

	// UpdateOrderStatus applies status and payment-status changes. Moving a
	// sale order to returned restores its line-item stock.
	UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderRequest, userID string) (*domain.Order, error)

	// DeleteOrder removes an order, restoring stock still held by an
	// un-returned sale order.
	DeleteOrder(ctx context.Context, orderID string, userID string) error
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
