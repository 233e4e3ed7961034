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

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}
