package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests for purchase and sale orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(orderService portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: orderService}
}

func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET(":orderID", h.getOrder)
		orders.PATCH(":orderID", h.updateOrderStatus)
		orders.DELETE(":orderID", middleware.AdminOnly(), h.deleteOrder)
	}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order, nil, nil))
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListOrdersParams{
		OrderType: c.Query("orderType"),
		Status:    c.Query("status"),
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToOrderResponse(&orders[i], nil, nil)
	}
	c.JSON(http.StatusOK, gin.H{"orders": responses})
}

func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("orderID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order, nil, nil))
}

func (h *orderHandler) deleteOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("orderID"), userID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
