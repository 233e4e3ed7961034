package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/handlers"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/DeveloperWK/product-inventory-api/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	args := m.Called(ctx, productID, userID)
	return args.Error(0)
}

func (m *MockProductService) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Test Suite ---
type ProductHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProductService *MockProductService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ProductHandlerTestSuite) generateTestToken(userID, role string) string {
	claims := middleware.AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inventory-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockProductService = new(MockProductService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{Product: suite.mockProductService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ProductHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateProductRequest{
		Name:  "Steel Bolt M8",
		SKU:   "BOLT-M8",
		Price: decimal.NewFromFloat(2.50),
		Cost:  decimal.NewFromFloat(1.10),
		Stock: 500,
	}
	created := &domain.Product{
		ProductID: uuid.NewString(),
		Name:      reqBody.Name,
		SKU:       reqBody.SKU,
		Price:     reqBody.Price,
		Cost:      reqBody.Cost,
		Stock:     reqBody.Stock,
	}

	suite.mockProductService.On("CreateProduct",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateProductRequest) bool {
			return req.SKU == "BOLT-M8" && req.Stock == 500
		}),
		userID,
	).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/products", suite.generateTestToken(userID, "staff"), reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ProductID, resp.ProductID)
	suite.Equal("BOLT-M8", resp.SKU)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MissingToken() {
	w := suite.doJSON(http.MethodPost, "/api/v1/products", "", dto.CreateProductRequest{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestGetProduct_NotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("GetProductByID", mock.Anything, productID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/products/"+productID, suite.generateTestToken(uuid.NewString(), "staff"), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProducts_PassesFilters() {
	userID := uuid.NewString()
	products := []domain.Product{
		{ProductID: uuid.NewString(), Name: "Widget", SKU: "W-1", Stock: 3},
	}

	suite.mockProductService.On("ListProducts",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListProductsParams) bool {
			return p.LowStock && p.Limit == 10 && p.Offset == 20 &&
				p.MinPrice != nil && p.MinPrice.Equal(decimal.NewFromInt(5))
		}),
	).Return(products, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/products?lowStock=true&limit=10&offset=20&minPrice=5", suite.generateTestToken(userID, "staff"), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProducts_InvalidPrice() {
	w := suite.doJSON(http.MethodGet, "/api/v1/products?minPrice=abc", suite.generateTestToken(uuid.NewString(), "staff"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "ListProducts")
}

func (suite *ProductHandlerTestSuite) TestAdjustStock_InsufficientStock() {
	userID := uuid.NewString()
	productID := uuid.NewString()
	reqBody := dto.AdjustStockRequest{Action: "decrement", Quantity: 10}

	suite.mockProductService.On("AdjustStock",
		mock.Anything,
		productID,
		reqBody,
		userID,
	).Return(nil, apperrors.NewInsufficientStock(productID)).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/products/"+productID+"/stock", suite.generateTestToken(userID, "staff"), reqBody)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestAdjustStock_UnknownActionRejectedByBinding() {
	reqBody := map[string]any{"action": "multiply", "quantity": 2}

	w := suite.doJSON(http.MethodPatch, "/api/v1/products/"+uuid.NewString()+"/stock", suite.generateTestToken(uuid.NewString(), "staff"), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "AdjustStock")
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct_RequiresAdmin() {
	productID := uuid.NewString()

	w := suite.doJSON(http.MethodDelete, "/api/v1/products/"+productID, suite.generateTestToken(uuid.NewString(), "staff"), nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "DeleteProduct")
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct_AdminSucceeds() {
	userID := uuid.NewString()
	productID := uuid.NewString()

	suite.mockProductService.On("DeleteProduct", mock.Anything, productID, userID).
		Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/products/"+productID, suite.generateTestToken(userID, "admin"), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
