package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionHandler handles HTTP requests for cash transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: transactionService}
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/summary", h.summarizeCashFlow)
		transactions.GET(":transactionID", h.getTransaction)
		transactions.PUT(":transactionID", h.amendTransaction)
		transactions.DELETE(":transactionID", h.retractTransaction)
	}
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListTransactionsParams{
		TxnType:  c.Query("type"),
		Category: c.Query("category"),
	}
	var bindErr error
	params.StartDate, bindErr = parseDateQuery(c, "startDate", bindErr)
	params.EndDate, bindErr = parseDateQuery(c, "endDate", bindErr)
	params.MinAmount, bindErr = parseDecimalQuery(c, "minAmount", bindErr)
	params.MaxAmount, bindErr = parseDecimalQuery(c, "maxAmount", bindErr)
	if bindErr != nil {
		logger.Warn("Invalid transaction list filter", slog.String("error", bindErr.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}

func (h *transactionHandler) amendTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for amendTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.AmendTransaction(c.Request.Context(), c.Param("transactionID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) retractTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.transactionService.RetractTransaction(c.Request.Context(), c.Param("transactionID"), userID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) summarizeCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SummaryParams
	var bindErr error
	params.StartDate, bindErr = parseDateQuery(c, "startDate", bindErr)
	params.EndDate, bindErr = parseDateQuery(c, "endDate", bindErr)
	if bindErr != nil {
		logger.Warn("Invalid summary window", slog.String("error", bindErr.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameters"})
		return
	}

	rows, err := h.transactionService.SummarizeCashFlow(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": rows})
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A previous
// error short-circuits so callers can chain parses and check once.
func parseDateQuery(c *gin.Context, key string, prev error) (*time.Time, error) {
	if prev != nil {
		return nil, prev
	}
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimalQuery(c *gin.Context, key string, prev error) (*decimal.Decimal, error) {
	if prev != nil {
		return nil, prev
	}
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
