package services

import (
	"context"
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
	"github.com/shopspring/decimal"
)

// transactionService posts, amends and retracts cash transactions. Every
// mutation pairs the row write with its balance effect; the pairing itself
// is enforced by the repository's atomic units.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// PostTransaction records a new income or expense transaction.
func (s *transactionService) PostTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnType := domain.TransactionType(req.TxnType)
	if txnType != domain.TxnIncome && txnType != domain.TxnExpense {
		return nil, fmt.Errorf("%w: transaction type must be income or expense", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TxnDate != nil {
		txnDate = *req.TxnDate
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       txnType,
		Category:      req.Category,
		Amount:        req.Amount,
		TxnDate:       txnDate,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		IsRecurring:   req.IsRecurring,
		AccountID:     req.AccountID,
		OrderID:       req.OrderID,
		ProductID:     req.ProductID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, txn.Delta()); err != nil {
		logger.Error("Failed to post transaction", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TxnType)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// AmendTransaction patches an existing transaction and re-derives its
// balance effect. Transfer legs cannot be amended; they only exist as a
// pair written by TransferFunds.
func (s *transactionService) AmendTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.TxnType == domain.TxnTransfer {
		return nil, fmt.Errorf("%w: transfer legs cannot be amended", apperrors.ErrValidation)
	}

	oldDelta := existing.Delta()
	oldAccountID := existing.AccountID

	updated := *existing
	if req.TxnType != nil {
		txnType := domain.TransactionType(*req.TxnType)
		if txnType != domain.TxnIncome && txnType != domain.TxnExpense {
			return nil, fmt.Errorf("%w: transaction type must be income or expense", apperrors.ErrValidation)
		}
		updated.TxnType = txnType
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
	}
	if req.TxnDate != nil {
		updated.TxnDate = *req.TxnDate
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		updated.PaymentMethod = *req.PaymentMethod
	}
	if req.IsRecurring != nil {
		updated.IsRecurring = *req.IsRecurring
	}
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	newDelta := updated.Delta()

	// Same account gets the net effect under one key so no intermediate
	// balance is ever applied; a moved transaction reverses on the old
	// account and applies on the new one.
	deltas := make(map[string]decimal.Decimal)
	if updated.AccountID == oldAccountID {
		deltas[oldAccountID] = newDelta.Sub(oldDelta)
	} else {
		deltas[oldAccountID] = oldDelta.Neg()
		deltas[updated.AccountID] = newDelta
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, *existing, updated, deltas); err != nil {
		logger.Error("Failed to amend transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction amended", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// RetractTransaction deletes a transaction and reverses its balance effect.
func (s *transactionService) RetractTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing.TxnType == domain.TxnTransfer {
		return fmt.Errorf("%w: transfer legs cannot be retracted individually", apperrors.ErrValidation)
	}

	existing.LastUpdatedBy = userID
	if err := s.transactionRepo.DeleteTransaction(ctx, *existing); err != nil {
		logger.Error("Failed to retract transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Transaction retracted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		TxnType:   params.TxnType,
		Category:  params.Category,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		MinAmount: params.MinAmount,
		MaxAmount: params.MaxAmount,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	return s.transactionRepo.ListTransactions(ctx, filter)
}

// SummarizeCashFlow aggregates committed transactions by type. The summary
// reads only committed state, so concurrent units never skew it.
func (s *transactionService) SummarizeCashFlow(ctx context.Context, params dto.SummaryParams) ([]domain.CashFlowSummaryRow, error) {
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", apperrors.ErrValidation)
	}
	return s.transactionRepo.SummarizeByType(ctx, params.StartDate, params.EndDate)
}
