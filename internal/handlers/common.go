package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/services"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps the service error taxonomy onto HTTP statuses.
// Internal detail is logged but never surfaced to the caller.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	var insufficientStock *apperrors.InsufficientStockError
	var insufficientFunds *apperrors.InsufficientFundsError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &insufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": insufficientStock.Error()})
	case errors.As(err, &insufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": insufficientFunds.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Error("Upstream failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service failure"})
	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn("Transient store failure", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary failure, please retry"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
	case errors.As(err, &appErr):
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireUserID pulls the authenticated user id out of the context, aborting
// with 401 when the auth middleware did not run.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
