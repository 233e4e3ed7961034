package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// SupplierSvcFacade defines operations for purchase-side counterparties
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, isActive *bool) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error)
}

// BusinessOrderSvcFacade defines operations for purchase-side bookkeeping orders
type BusinessOrderSvcFacade interface {
	CreateBusinessOrder(ctx context.Context, req dto.CreateBusinessOrderRequest, creatorUserID string) (*domain.BusinessOrder, error)
	GetBusinessOrderByID(ctx context.Context, businessOrderID string) (*dto.BusinessOrderResponse, error)
	ListBusinessOrders(ctx context.Context, params dto.ListBusinessOrdersParams) ([]domain.BusinessOrder, int64, error)
	UpdateBusinessOrder(ctx context.Context, businessOrderID string, req dto.UpdateBusinessOrderRequest, userID string) (*domain.BusinessOrder, error)
	DeleteBusinessOrder(ctx context.Context, businessOrderID string, userID string) error
}
