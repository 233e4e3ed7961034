package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
)

type ProductRepositoryTestSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	productRepo portsrepo.ProductRepositoryFacade
	userID      string
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	s.pool = setupTestPool(s.T())
	s.productRepo = newPgxProductRepository(s.pool)
	s.userID = uuid.NewString()
}

func (s *ProductRepositoryTestSuite) createProduct(stock int64) domain.Product {
	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Test Widget",
		SKU:       "SKU-" + uuid.NewString(),
		Price:     decimal.NewFromInt(100),
		Cost:      decimal.NewFromInt(60),
		Stock:     stock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     s.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: s.userID,
		},
	}
	s.Require().NoError(s.productRepo.SaveProduct(context.Background(), product))
	return product
}

func (s *ProductRepositoryTestSuite) TestDecrementBeyondStockLeavesCountUntouched() {
	ctx := context.Background()
	product := s.createProduct(3)

	_, err := s.productRepo.AdjustStock(ctx, product.ProductID, domain.StockDecrement, 5, s.userID, time.Now().UTC())

	s.Require().Error(err)
	s.True(apperrors.IsInsufficientStock(err))

	got, err := s.productRepo.FindProductByID(ctx, product.ProductID)
	s.Require().NoError(err)
	s.Equal(int64(3), got.Stock)
}

func (s *ProductRepositoryTestSuite) TestDecrementWithinStockPersists() {
	ctx := context.Background()
	product := s.createProduct(3)

	updated, err := s.productRepo.AdjustStock(ctx, product.ProductID, domain.StockDecrement, 2, s.userID, time.Now().UTC())

	s.Require().NoError(err)
	s.Equal(int64(1), updated.Stock)

	got, err := s.productRepo.FindProductByID(ctx, product.ProductID)
	s.Require().NoError(err)
	s.Equal(int64(1), got.Stock)
}

func TestProductRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}
