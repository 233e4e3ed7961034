package repositories

import (
	"context"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	LowStock   bool // stock < reorder_level
	Limit      int
	Offset     int
}

// ProductRepositoryFacade is the persistence surface for products. AdjustStock
// is the atomic increment primitive: decrements are conditional updates that
// fail as a unit when stock would go negative.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	AdjustStock(ctx context.Context, productID string, action domain.StockAction, quantity int64, userID string, now time.Time) (*domain.Product, error)
}

// CategoryRepositoryFacade is the persistence surface for categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
