package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// TransactionReaderSvc defines read operations for cash transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// SummarizeCashFlow aggregates committed transactions by type over an
	// optional date window.
	SummarizeCashFlow(ctx context.Context, params dto.SummaryParams) ([]domain.CashFlowSummaryRow, error)
}

// TransactionWriterSvc defines write operations for cash transactions.
// Every write pairs the transaction row with its balance effect in one
// atomic unit.
type TransactionWriterSvc interface {
	// PostTransaction records a new income or expense transaction and applies
	// its signed effect to the owning account's balance.
	PostTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// AmendTransaction updates an existing transaction, reversing the old
	// balance effect and applying the new one.
	AmendTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// RetractTransaction deletes a transaction and reverses its balance effect.
	RetractTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// AccountReaderSvc defines read operations for cash accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific cash account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)

	// ListAccounts retrieves cash accounts matching the given filters.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CashAccount, error)
}

// AccountWriterSvc defines write operations for cash accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new cash account with its opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.CashAccount, error)

	// TransferFunds moves funds between two distinct accounts, writing both
	// transfer legs and both balance updates in one atomic unit.
	TransferFunds(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
