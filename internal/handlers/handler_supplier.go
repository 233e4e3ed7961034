package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(supplierService portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{supplierService: supplierService}
}

func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET(":supplierID", h.getSupplier)
		suppliers.PUT(":supplierID", h.updateSupplier)
	}
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var isActive *bool
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		isActive = &active
	}

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), isActive)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	responses := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = dto.ToSupplierResponse(&suppliers[i])
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": responses})
}

func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("supplierID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}
