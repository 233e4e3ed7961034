package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
)

// productService provides product catalog and stock operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	cache       portssvc.Cache
}

// NewProductService creates a new ProductService. cache may be nil; when set,
// writes that change the dashboard projection invalidate its cached copy.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, cache portssvc.Cache) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, cache: cache}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product after validation.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: price and cost must not be negative", apperrors.ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		Name:         req.Name,
		SKU:          req.SKU,
		Price:        req.Price,
		Cost:         req.Cost,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("sku", req.SKU), slog.String("error", err.Error()))
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	return s.productRepo.FindProductsByIDs(ctx, productIDs)
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	filter := portsrepo.ProductFilter{
		CategoryID: params.CategoryID,
		MinPrice:   params.MinPrice,
		MaxPrice:   params.MaxPrice,
		LowStock:   params.LowStock,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	return s.productRepo.ListProducts(ctx, filter)
}

// UpdateProduct applies the present fields of the patch. SKU cannot change
// after creation and stock only moves through AdjustStock.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost must not be negative", apperrors.ErrValidation)
		}
		product.Cost = *req.Cost
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = req.ReorderLevel
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		product.SupplierID = *req.SupplierID
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("product_id", productID), slog.String("error", err.Error()))
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	invalidateDashboard(ctx, s.cache)
	logger.Info("Product deleted", slog.String("product_id", productID), slog.String("deleted_by", userID))
	return nil
}

// AdjustStock validates the requested action and delegates to the atomic
// stock primitive. Set is an administrative overwrite; negative targets are
// rejected here.
func (s *productService) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	action := domain.StockAction(req.Action)
	switch action {
	case domain.StockIncrement, domain.StockDecrement:
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for %s", apperrors.ErrValidation, action)
		}
	case domain.StockSet:
		if req.Quantity < 0 {
			return nil, fmt.Errorf("%w: stock cannot be set to a negative value", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown stock action %q", apperrors.ErrValidation, req.Action)
	}

	product, err := s.productRepo.AdjustStock(ctx, productID, action, req.Quantity, userID, time.Now().UTC())
	if err != nil {
		logger.Warn("Stock adjustment failed",
			slog.String("product_id", productID),
			slog.String("action", req.Action),
			slog.Int64("quantity", req.Quantity),
			slog.String("error", err.Error()))
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	logger.Info("Stock adjusted",
		slog.String("product_id", productID),
		slog.String("action", req.Action),
		slog.Int64("stock", product.Stock))
	return product, nil
}
