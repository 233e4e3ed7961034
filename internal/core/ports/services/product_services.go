package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its unique identifier.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetProductsByIDs retrieves multiple products keyed by their IDs.
	GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a filtered, paginated list of products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for product data
type ProductWriterSvc interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct applies a partial update to an existing product.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// DeleteProduct removes a product permanently.
	DeleteProduct(ctx context.Context, productID string, userID string) error

	// AdjustStock applies an increment, decrement or set to a product's stock
	// count and returns the updated product.
	AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}

// CategorySvcFacade defines operations for product categories
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
}
