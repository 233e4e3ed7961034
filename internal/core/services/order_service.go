package services

import (
	"context"
	"errors"
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

// orderService orchestrates order lifecycle: creation with stock decrements,
// status transitions with stock restoration, and deletion.
type orderService struct {
	orderRepo       portsrepo.OrderRepositoryFacade
	productRepo     portsrepo.ProductRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	courier         portssvc.CourierBooker
	cache           portssvc.Cache
}

// NewOrderService creates a new OrderService. The courier booker may be nil
// when no shipping integration is configured; orders with shipping info are
// then rejected. cache may be nil; when set, order writes invalidate the
// cached dashboard projection.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, courier portssvc.CourierBooker, cache portssvc.Cache) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		courier:         courier,
		cache:           cache,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// aggregateQuantities folds duplicate product lines into one quantity per
// product so the repository applies a single stock movement per row.
func aggregateQuantities(items []domain.OrderItem) map[string]int64 {
	quantities := make(map[string]int64, len(items))
	for _, item := range items {
		quantities[item.ProductID] += item.Quantity
	}
	return quantities
}

// CreateOrder persists a new order. Sale orders decrement stock atomically
// with order persistence; shipping info triggers a courier booking first,
// and a booking failure aborts the whole creation.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	orderType := domain.OrderType(req.OrderType)
	if orderType != domain.OrderPurchase && orderType != domain.OrderSale {
		return nil, fmt.Errorf("%w: order type must be purchase or sale", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", apperrors.ErrValidation)
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	quantities := aggregateQuantities(items)
	productIDs := make([]string, 0, len(quantities))
	for productID := range quantities {
		productIDs = append(productIDs, productID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, productID := range productIDs {
		if _, ok := products[productID]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
	}

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:       uuid.NewString(),
		OrderType:     orderType,
		Items:         items,
		TotalAmount:   req.TotalAmount,
		Status:        domain.OrderProcessing,
		PaymentStatus: domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Courier booking happens before anything is persisted so a partner
	// failure leaves no order and no stock change behind.
	if req.Shipping != nil {
		if s.courier == nil {
			return nil, fmt.Errorf("%w: courier integration is not configured", apperrors.ErrUpstream)
		}
		receipt, err := s.courier.Book(ctx, portssvc.CourierRequest{
			InvoiceID:        order.OrderID,
			RecipientName:    req.Shipping.RecipientName,
			RecipientPhone:   req.Shipping.RecipientPhone,
			RecipientAddress: req.Shipping.RecipientAddress,
			CODAmount:        req.Shipping.CODAmount,
			Note:             req.Shipping.Note,
		})
		if err != nil {
			logger.Error("Courier booking failed", slog.String("order_id", order.OrderID), slog.String("error", err.Error()))
			return nil, err
		}
		order.ConsignmentID = receipt.ConsignmentID
		order.TrackingCode = receipt.TrackingCode
	}

	decrements := map[string]int64{}
	if orderType == domain.OrderSale {
		decrements = quantities
	}

	if err := s.orderRepo.SaveOrder(ctx, order, decrements); err != nil {
		logger.Warn("Order creation failed", slog.String("order_id", order.OrderID), slog.String("error", err.Error()))
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	logger.Info("Order created",
		slog.String("order_id", order.OrderID),
		slog.String("order_type", string(order.OrderType)),
		slog.Int("items", len(order.Items)))
	return &order, nil
}

// UpdateOrderStatus applies status and payment-status patches. Moving a sale
// order to returned restores its line-item stock in the same atomic unit.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	restores := map[string]int64{}
	if req.Status != nil {
		to := domain.OrderStatus(*req.Status)
		if !domain.ValidStatus(to) {
			return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, *req.Status)
		}
		if !domain.CanTransition(order.Status, to) {
			return nil, fmt.Errorf("%w: cannot move order from %s to %s", apperrors.ErrValidation, order.Status, to)
		}
		if to == domain.OrderReturned && domain.StockApplied(order.OrderType, order.Status) {
			restores = aggregateQuantities(order.Items)
		}
		order.Status = to
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = domain.PaymentStatus(*req.PaymentStatus)
	}
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.orderRepo.UpdateOrder(ctx, *order, restores); err != nil {
		logger.Error("Order update failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	logger.Info("Order updated",
		slog.String("order_id", orderID),
		slog.String("status", string(order.Status)),
		slog.Int("restored_lines", len(restores)))
	return order, nil
}

// DeleteOrder removes an order. A sale order whose create-time stock
// decrement is still in effect gets its stock restored in the same unit;
// linked transactions are left intact.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	restores := map[string]int64{}
	if domain.StockApplied(order.OrderType, order.Status) {
		restores = aggregateQuantities(order.Items)
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderID, restores, userID, time.Now().UTC()); err != nil {
		logger.Error("Order deletion failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return err
	}

	invalidateDashboard(ctx, s.cache)
	logger.Info("Order deleted", slog.String("order_id", orderID), slog.Int("restored_lines", len(restores)))
	return nil
}

// GetOrderByID retrieves an order with resolved product details and its
// linked transaction. A dangling transaction reference is tolerated.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	var txn *domain.Transaction
	if order.TransactionID != "" {
		txn, err = s.transactionRepo.FindTransactionByID(ctx, order.TransactionID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	resp := dto.ToOrderResponse(order, products, txn)
	return &resp, nil
}

func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error) {
	filter := portsrepo.OrderFilter{
		OrderType: params.OrderType,
		Status:    params.Status,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	return s.orderRepo.ListOrders(ctx, filter)
}
