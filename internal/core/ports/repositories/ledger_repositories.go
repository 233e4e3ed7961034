package repositories

import (
	"context"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows cash-account listings.
type AccountFilter struct {
	AccountType string
	IsActive    *bool
}

// AccountRepositoryFacade is the persistence surface for cash accounts. The
// InTx methods participate in a caller-owned transaction so the transaction
// and order repositories can lock and mutate balances inside their own
// atomic units.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.CashAccount) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.CashAccount, error)
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error)
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	TxnType   string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Limit     int
	Offset    int
}

// TransferResult reports post-transfer balances.
type TransferResult struct {
	NewSourceBalance decimal.Decimal
	NewTargetBalance decimal.Decimal
}

// TransactionRepositoryFacade owns the transactions table and every atomic
// unit that pairs a transaction write with its balance effect. Partial
// application is never observable: each method commits everything or nothing.
type TransactionRepositoryFacade interface {
	// SaveTransaction persists txn and applies delta to its owning account in
	// one atomic unit.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) error
	// UpdateTransaction persists the amended row and applies the per-account
	// balance deltas (net, when old and new account coincide) in one unit.
	// old is the committed snapshot the deltas were derived from; if the row
	// no longer matches it the unit aborts with ErrTransient and the caller
	// retries from a fresh read.
	UpdateTransaction(ctx context.Context, old, txn domain.Transaction, deltas map[string]decimal.Decimal) error
	// DeleteTransaction reverses txn's delta on its account and removes the
	// row in one unit. txn is the committed snapshot; a row that no longer
	// matches it aborts the unit with ErrTransient.
	DeleteTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransfer locks both accounts, re-checks source funds under the
	// lock, applies both deltas and inserts both legs in one unit.
	SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) (*TransferResult, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	SummarizeByType(ctx context.Context, startDate, endDate *time.Time) ([]domain.CashFlowSummaryRow, error)
}
