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

type businessOrderHandler struct {
	businessOrderService portssvc.BusinessOrderSvcFacade
}

func newBusinessOrderHandler(businessOrderService portssvc.BusinessOrderSvcFacade) *businessOrderHandler {
	return &businessOrderHandler{businessOrderService: businessOrderService}
}

func registerBusinessOrderRoutes(rg *gin.RouterGroup, businessOrderService portssvc.BusinessOrderSvcFacade) {
	h := newBusinessOrderHandler(businessOrderService)

	businessOrders := rg.Group("/business-orders")
	{
		businessOrders.POST("", h.createBusinessOrder)
		businessOrders.GET("", h.listBusinessOrders)
		businessOrders.GET(":businessOrderID", h.getBusinessOrder)
		businessOrders.PUT(":businessOrderID", h.updateBusinessOrder)
		businessOrders.DELETE(":businessOrderID", middleware.AdminOnly(), h.deleteBusinessOrder)
	}
}

func (h *businessOrderHandler) createBusinessOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBusinessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBusinessOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.businessOrderService.CreateBusinessOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBusinessOrderResponse(order, ""))
}

func (h *businessOrderHandler) getBusinessOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.businessOrderService.GetBusinessOrderByID(c.Request.Context(), c.Param("businessOrderID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *businessOrderHandler) listBusinessOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListBusinessOrdersParams{SupplierID: c.Query("supplier")}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.businessOrderService.ListBusinessOrders(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	responses := make([]dto.BusinessOrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToBusinessOrderResponse(&orders[i], "")
	}
	c.JSON(http.StatusOK, gin.H{"businessOrders": responses, "total": total})
}

func (h *businessOrderHandler) updateBusinessOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBusinessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBusinessOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.businessOrderService.UpdateBusinessOrder(c.Request.Context(), c.Param("businessOrderID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessOrderResponse(order, ""))
}

func (h *businessOrderHandler) deleteBusinessOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.businessOrderService.DeleteBusinessOrder(c.Request.Context(), c.Param("businessOrderID"), userID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
