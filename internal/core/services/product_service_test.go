package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/core/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Cache ---
type MockCache struct {
	mock.Mock
}

var _ portssvc.Cache = (*MockCache)(nil)

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *MockCache) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         portssvc.ProductSvcFacade
	userID          string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo, nil)
	suite.userID = uuid.NewString()
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:  "Mechanical Keyboard",
		SKU:   "KB-0042",
		Price: decimal.NewFromInt(4500),
		Cost:  decimal.NewFromInt(3200),
		Stock: 25,
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.SKU == "KB-0042" && p.Stock == 25 && p.CreatedBy == suite.userID
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateSKUSurfaces() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:  "Mechanical Keyboard",
		SKU:   "KB-0042",
		Price: decimal.NewFromInt(4500),
		Cost:  decimal.NewFromInt(3200),
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_IncrementDelegates() {
	ctx := context.Background()
	productID := uuid.NewString()
	updated := &domain.Product{ProductID: productID, Stock: 30}

	suite.mockProductRepo.On("AdjustStock", ctx, productID, domain.StockIncrement, int64(5), suite.userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	product, err := suite.service.AdjustStock(ctx, productID, dto.AdjustStockRequest{Action: "increment", Quantity: 5}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(30), product.Stock)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestAdjustStock_DecrementRequiresPositiveQuantity() {
	ctx := context.Background()

	_, err := suite.service.AdjustStock(ctx, uuid.NewString(), dto.AdjustStockRequest{Action: "decrement", Quantity: 0}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_SetNegativeRejected() {
	ctx := context.Background()

	_, err := suite.service.AdjustStock(ctx, uuid.NewString(), dto.AdjustStockRequest{Action: "set", Quantity: -3}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_SetZeroAllowed() {
	ctx := context.Background()
	productID := uuid.NewString()
	updated := &domain.Product{ProductID: productID, Stock: 0}

	suite.mockProductRepo.On("AdjustStock", ctx, productID, domain.StockSet, int64(0), suite.userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	product, err := suite.service.AdjustStock(ctx, productID, dto.AdjustStockRequest{Action: "set", Quantity: 0}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), product.Stock)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_UnknownActionRejected() {
	ctx := context.Background()

	_, err := suite.service.AdjustStock(ctx, uuid.NewString(), dto.AdjustStockRequest{Action: "multiply", Quantity: 2}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_InsufficientStockSurfaces() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("AdjustStock", ctx, productID, domain.StockDecrement, int64(10), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewInsufficientStock(productID)).Once()

	_, err := suite.service.AdjustStock(ctx, productID, dto.AdjustStockRequest{Action: "decrement", Quantity: 10}, suite.userID)

	suite.Require().Error(err)
	suite.True(apperrors.IsInsufficientStock(err))
}

func (suite *ProductServiceTestSuite) TestAdjustStock_DropsCachedDashboard() {
	ctx := context.Background()
	productID := uuid.NewString()
	updated := &domain.Product{ProductID: productID, Stock: 12}
	mockCache := new(MockCache)
	service := services.NewProductService(suite.mockProductRepo, mockCache)

	suite.mockProductRepo.On("AdjustStock", ctx, productID, domain.StockDecrement, int64(3), suite.userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()
	mockCache.On("Delete", ctx, "reporting:dashboard_totals").Return().Once()

	_, err := service.AdjustStock(ctx, productID, dto.AdjustStockRequest{Action: "decrement", Quantity: 3}, suite.userID)

	suite.Require().NoError(err)
	mockCache.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestAdjustStock_FailureKeepsCachedDashboard() {
	ctx := context.Background()
	productID := uuid.NewString()
	mockCache := new(MockCache)
	service := services.NewProductService(suite.mockProductRepo, mockCache)

	suite.mockProductRepo.On("AdjustStock", ctx, productID, domain.StockDecrement, int64(5), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewInsufficientStock(productID)).Once()

	_, err := service.AdjustStock(ctx, productID, dto.AdjustStockRequest{Action: "decrement", Quantity: 5}, suite.userID)

	suite.Require().Error(err)
	mockCache.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
