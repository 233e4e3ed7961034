package dto

import (
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	SKU          string          `json:"sku" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required,dpositive"`
	Cost         decimal.Decimal `json:"cost" binding:"required,dpositive"`
	Stock        int64           `json:"stock" binding:"min=0"`
	ReorderLevel *int64          `json:"reorderLevel,omitempty" binding:"omitempty,min=0"`
	CategoryID   string          `json:"category,omitempty"`
	SupplierID   string          `json:"supplier,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// UpdateProductRequest is a partial-update patch; only present fields are
// applied. SKU is immutable and deliberately absent.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty" binding:"omitempty,dpositive"`
	Cost         *decimal.Decimal `json:"cost,omitempty" binding:"omitempty,dpositive"`
	ReorderLevel *int64           `json:"reorderLevel,omitempty" binding:"omitempty,min=0"`
	CategoryID   *string          `json:"category,omitempty"`
	SupplierID   *string          `json:"supplier,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

// AdjustStockRequest selects the stock mutation to apply.
type AdjustStockRequest struct {
	Action   string `json:"action" binding:"required,oneof=increment decrement set"`
	Quantity int64  `json:"quantity" binding:"min=0"`
}

// ListProductsParams carries the read-side product filters.
type ListProductsParams struct {
	CategoryID string           `form:"category"`
	MinPrice   *decimal.Decimal `form:"minPrice"`
	MaxPrice   *decimal.Decimal `form:"maxPrice"`
	LowStock   bool             `form:"lowStock"`
	Limit      int              `form:"limit"`
	Offset     int              `form:"offset"`
}

// ProductResponse is the wire representation of a product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	ReorderLevel *int64          `json:"reorderLevel,omitempty"`
	CategoryID   string          `json:"category,omitempty"`
	SupplierID   string          `json:"supplier,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// ToProductResponse converts a domain.Product to its wire form.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		SKU:          p.SKU,
		Price:        p.Price,
		Cost:         p.Cost,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Description:  p.Description,
	}
}

// ToProductResponses converts a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}
