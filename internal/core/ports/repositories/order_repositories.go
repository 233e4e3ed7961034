package repositories

import (
	"context"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	OrderType string
	Status    string
	Limit     int
	Offset    int
}

// OrderRepositoryFacade owns orders and their embedded items. Stock
// movements paired with an order mutation happen inside the same atomic
// unit; quantities are keyed by product id (lines against the same product
// are pre-aggregated by the service).
type OrderRepositoryFacade interface {
	// SaveOrder persists the order and its items, decrementing stock for
	// every entry of decrements. Any insufficient line aborts the whole unit
	// with an InsufficientStockError naming the product.
	SaveOrder(ctx context.Context, order domain.Order, decrements map[string]int64) error
	// UpdateOrder persists status/paymentStatus changes and restores stock
	// for every entry of restores in the same unit.
	UpdateOrder(ctx context.Context, order domain.Order, restores map[string]int64) error
	// DeleteOrder removes the order (items cascade) after restoring stock
	// for every entry of restores in the same unit.
	DeleteOrder(ctx context.Context, orderID string, restores map[string]int64, userID string, now time.Time) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}
