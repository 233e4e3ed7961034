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
)

// accountService manages cash accounts and inter-account transfers.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new cash account with its opening balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.CashAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	switch accountType {
	case domain.AccountBank, domain.AccountCash, domain.AccountMobile:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	currency := req.Currency
	if currency == "" {
		currency = "BDT"
	}

	now := time.Now().UTC()
	account := domain.CashAccount{
		AccountID:     uuid.NewString(),
		Name:          req.Name,
		AccountType:   accountType,
		Balance:       req.Balance,
		Currency:      currency,
		AccountNumber: req.AccountNumber,
		Institution:   req.Institution,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CashAccount, error) {
	filter := portsrepo.AccountFilter{
		AccountType: params.AccountType,
		IsActive:    params.IsActive,
	}
	return s.accountRepo.ListAccounts(ctx, filter)
}

// TransferFunds moves funds between two distinct accounts. Both legs share
// one transfer id and are written with both balance updates in a single
// atomic unit; the funds check runs against the locked source balance.
func (s *accountService) TransferFunds(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccount == req.ToAccount {
		return nil, fmt.Errorf("%w: source and target accounts must differ", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	out := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnTransfer,
		Category:      "transfer",
		Amount:        req.Amount,
		TxnDate:       now,
		Description:   req.Description,
		PaymentMethod: "transfer",
		AccountID:     req.FromAccount,
		TransferID:    transferID,
		TransferOut:   true,
		AuditFields:   audit,
	}
	in := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnTransfer,
		Category:      "transfer",
		Amount:        req.Amount,
		TxnDate:       now,
		Description:   req.Description,
		PaymentMethod: "transfer",
		AccountID:     req.ToAccount,
		TransferID:    transferID,
		TransferOut:   false,
		AuditFields:   audit,
	}

	result, err := s.transactionRepo.SaveTransfer(ctx, out, in)
	if err != nil {
		logger.Warn("Transfer failed",
			slog.String("from", req.FromAccount),
			slog.String("to", req.ToAccount),
			slog.String("amount", req.Amount.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", transferID),
		slog.String("from", req.FromAccount),
		slog.String("to", req.ToAccount),
		slog.String("amount", req.Amount.String()))

	return &dto.TransferResponse{
		NewSourceBalance: result.NewSourceBalance,
		NewTargetBalance: result.NewTargetBalance,
	}, nil
}
