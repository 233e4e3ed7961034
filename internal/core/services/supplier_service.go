package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	paymentTerms := 0
	if req.PaymentTerms != nil {
		paymentTerms = *req.PaymentTerms
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID:   uuid.NewString(),
		Name:         req.Name,
		Contact:      req.Contact,
		PaymentTerms: paymentTerms,
		Address:      req.Address,
		Notes:        req.Notes,
		IsActive:     isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

func (s *supplierService) ListSuppliers(ctx context.Context, isActive *bool) ([]domain.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx, portsrepo.SupplierFilter{IsActive: isActive})
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Contact != nil {
		supplier.Contact = *req.Contact
	}
	if req.PaymentTerms != nil {
		supplier.PaymentTerms = *req.PaymentTerms
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	supplier.LastUpdatedAt = time.Now().UTC()
	supplier.LastUpdatedBy = userID

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}
