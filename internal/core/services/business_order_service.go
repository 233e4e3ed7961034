package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// businessOrderService manages purchase-side bookkeeping orders and their
// supplier and transaction links.
type businessOrderService struct {
	businessOrderRepo portsrepo.BusinessOrderRepositoryFacade
	supplierRepo      portsrepo.SupplierRepositoryFacade
}

// NewBusinessOrderService creates a new BusinessOrderService.
func NewBusinessOrderService(businessOrderRepo portsrepo.BusinessOrderRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.BusinessOrderSvcFacade {
	return &businessOrderService{
		businessOrderRepo: businessOrderRepo,
		supplierRepo:      supplierRepo,
	}
}

var _ portssvc.BusinessOrderSvcFacade = (*businessOrderService)(nil)

func (s *businessOrderService) CreateBusinessOrder(ctx context.Context, req dto.CreateBusinessOrderRequest, creatorUserID string) (*domain.BusinessOrder, error) {
	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := domain.BusinessOrder{
		BusinessOrderID:     uuid.NewString(),
		Name:                req.Name,
		SupplierID:          req.SupplierID,
		OrderDate:           orderDate,
		Due:                 req.Due,
		Payment:             req.Payment,
		Total:               req.Total,
		Discount:            req.Discount,
		Quantity:            req.Quantity,
		RelatedTransactions: req.RelatedTransactions,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.businessOrderRepo.SaveBusinessOrder(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetBusinessOrderByID retrieves a business order with its supplier name
// resolved for display.
func (s *businessOrderService) GetBusinessOrderByID(ctx context.Context, businessOrderID string) (*dto.BusinessOrderResponse, error) {
	order, err := s.businessOrderRepo.FindBusinessOrderByID(ctx, businessOrderID)
	if err != nil {
		return nil, err
	}

	supplierName := ""
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, order.SupplierID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if supplier != nil {
		supplierName = supplier.Name
	}

	resp := dto.ToBusinessOrderResponse(order, supplierName)
	return &resp, nil
}

func (s *businessOrderService) ListBusinessOrders(ctx context.Context, params dto.ListBusinessOrdersParams) ([]domain.BusinessOrder, int64, error) {
	filter := portsrepo.BusinessOrderFilter{
		SupplierID: params.SupplierID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	return s.businessOrderRepo.ListBusinessOrders(ctx, filter)
}

func (s *businessOrderService) UpdateBusinessOrder(ctx context.Context, businessOrderID string, req dto.UpdateBusinessOrderRequest, userID string) (*domain.BusinessOrder, error) {
	order, err := s.businessOrderRepo.FindBusinessOrderByID(ctx, businessOrderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		order.Name = *req.Name
	}
	if req.Due != nil {
		order.Due = *req.Due
	}
	if req.Payment != nil {
		order.Payment = *req.Payment
	}
	if req.Total != nil {
		order.Total = *req.Total
	}
	if req.Discount != nil {
		order.Discount = *req.Discount
	}
	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.RelatedTransactions != nil {
		order.RelatedTransactions = req.RelatedTransactions
	}
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.businessOrderRepo.UpdateBusinessOrder(ctx, *order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *businessOrderService) DeleteBusinessOrder(ctx context.Context, businessOrderID string, userID string) error {
	return s.businessOrderRepo.DeleteBusinessOrder(ctx, businessOrderID)
}
