package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	"github.com/DeveloperWK/product-inventory-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for cash transaction
// data. The account repository is injected so every write can pair the row
// with its balance effect inside one transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		TxnType:       string(d.TxnType),
		Category:      d.Category,
		Amount:        d.Amount,
		TxnDate:       d.TxnDate,
		Description:   d.Description,
		PaymentMethod: d.PaymentMethod,
		IsRecurring:   d.IsRecurring,
		AccountID:     d.AccountID,
		OrderID:       d.OrderID,
		ProductID:     d.ProductID,
		TransferID:    d.TransferID,
		TransferOut:   d.TransferOut,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		TxnType:       domain.TransactionType(m.TxnType),
		Category:      m.Category,
		Amount:        m.Amount,
		TxnDate:       m.TxnDate,
		Description:   m.Description,
		PaymentMethod: m.PaymentMethod,
		IsRecurring:   m.IsRecurring,
		AccountID:     m.AccountID,
		OrderID:       m.OrderID,
		ProductID:     m.ProductID,
		TransferID:    m.TransferID,
		TransferOut:   m.TransferOut,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, txn_type, category, amount, txn_date, description, payment_method, is_recurring, account_id, order_id, product_id, transfer_id, transfer_out, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	var orderID, productID, transferID sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.TxnType,
		&m.Category,
		&m.Amount,
		&m.TxnDate,
		&m.Description,
		&m.PaymentMethod,
		&m.IsRecurring,
		&m.AccountID,
		&orderID,
		&productID,
		&transferID,
		&m.TransferOut,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	m.OrderID = orderID.String
	m.ProductID = productID.String
	m.TransferID = transferID.String
	return toDomainTransaction(m), nil
}

func insertTransactionArgs(m models.Transaction) []interface{} {
	return []interface{}{
		m.TransactionID,
		m.TxnType,
		m.Category,
		m.Amount,
		m.TxnDate,
		m.Description,
		m.PaymentMethod,
		m.IsRecurring,
		m.AccountID,
		nullableString(m.OrderID),
		nullableString(m.ProductID),
		nullableString(m.TransferID),
		m.TransferOut,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTransaction inserts the transaction and applies delta to its owning
// account's balance in one atomic unit.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Locking first also proves existence of the account.
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{txn.AccountID}); err != nil {
		return err
	}

	m := toModelTransaction(txn)
	if _, err := tx.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, mapStoreError(err))
	}

	deltas := map[string]decimal.Decimal{txn.AccountID: delta}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, txn.CreatedBy, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance delta for transaction "+m.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction persists the amended row and applies the per-account
// balance deltas in the same unit. When the amendment keeps the same account
// the caller passes the net delta under a single key, so no intermediate
// balance state is ever visible. The UPDATE is guarded on the old snapshot's
// type, amount and account: deltas were derived from that state, so a row
// changed by a concurrent unit aborts with ErrTransient instead of applying
// a stale delta.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, old, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	m := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET txn_type = $2, category = $3, amount = $4, txn_date = $5, description = $6, payment_method = $7, is_recurring = $8, account_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1 AND txn_type = $12 AND amount = $13 AND account_id = $14;
	`
	ct, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TxnType,
		m.Category,
		m.Amount,
		m.TxnDate,
		m.Description,
		m.PaymentMethod,
		m.IsRecurring,
		m.AccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(old.TxnType),
		old.Amount,
		old.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, mapStoreError(err))
	}
	if ct.RowsAffected() == 0 {
		return r.classifyStaleRow(ctx, tx, m.TransactionID)
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas for transaction "+m.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// classifyStaleRow distinguishes a vanished row from one a concurrent unit
// changed since the caller's read. The former is final, the latter is worth
// retrying from a fresh read.
func (r *PgxTransactionRepository) classifyStaleRow(ctx context.Context, tx pgx.Tx, transactionID string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`, transactionID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to re-check transaction "+transactionID, mapStoreError(err))
	}
	if exists {
		return fmt.Errorf("%w: transaction %s changed concurrently", apperrors.ErrTransient, transactionID)
	}
	return apperrors.ErrNotFound
}

// DeleteTransaction reverses txn's balance effect and removes the row in one
// atomic unit. The DELETE is guarded on the snapshot's type, amount and
// account so a row changed by a concurrent amend aborts with ErrTransient
// rather than reversing a delta the row no longer carries.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{txn.AccountID}); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND txn_type = $2 AND amount = $3 AND account_id = $4;`,
		txn.TransactionID, string(txn.TxnType), txn.Amount, txn.AccountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+txn.TransactionID, mapStoreError(err))
	}
	if ct.RowsAffected() == 0 {
		return r.classifyStaleRow(ctx, tx, txn.TransactionID)
	}

	deltas := map[string]decimal.Decimal{txn.AccountID: txn.Delta().Neg()}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, txn.LastUpdatedBy, time.Now().UTC()); err != nil {
		return apperrors.NewAppError(500, "failed to reverse balance delta for transaction "+txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveTransfer locks both accounts in one query, re-checks source funds on
// the locked balance, applies both deltas and inserts both legs. Everything
// commits or nothing does.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) (*portsrepo.TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{out.AccountID, in.AccountID})
	if err != nil {
		return nil, err
	}

	source := locked[out.AccountID]
	if source.Balance.LessThan(out.Amount) {
		return nil, apperrors.NewInsufficientFunds(out.AccountID)
	}

	batch := &pgx.Batch{}
	batch.Queue(insertTransactionQuery, insertTransactionArgs(toModelTransaction(out))...)
	batch.Queue(insertTransactionQuery, insertTransactionArgs(toModelTransaction(in))...)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transfer legs", mapStoreError(err))
	}

	deltas := map[string]decimal.Decimal{
		out.AccountID: out.Amount.Neg(),
		in.AccountID:  in.Amount,
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, out.CreatedBy, out.CreatedAt); err != nil {
		return nil, apperrors.NewAppError(500, "failed to apply transfer balance deltas", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.TransferResult{
		NewSourceBalance: source.Balance.Sub(out.Amount),
		NewTargetBalance: locked[in.AccountID].Balance.Add(in.Amount),
	}, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.TxnType != "" {
		query += ` AND txn_type = $` + strconv.Itoa(argIdx)
		args = append(args, filter.TxnType)
		argIdx++
	}
	if filter.Category != "" {
		query += ` AND category = $` + strconv.Itoa(argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.StartDate != nil {
		query += ` AND txn_date >= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		query += ` AND txn_date <= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.MinAmount != nil {
		query += ` AND amount >= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.MinAmount)
		argIdx++
	}
	if filter.MaxAmount != nil {
		query += ` AND amount <= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.MaxAmount)
		argIdx++
	}

	query += ` ORDER BY txn_date DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(argIdx)
		args = append(args, filter.Limit)
		argIdx++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// SummarizeByType aggregates committed transactions by type over an optional
// date window. Read-only; never joins the write path.
func (r *PgxTransactionRepository) SummarizeByType(ctx context.Context, startDate, endDate *time.Time) ([]domain.CashFlowSummaryRow, error) {
	query := `SELECT txn_type, COALESCE(SUM(amount), 0), COUNT(*) FROM transactions WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if startDate != nil {
		query += ` AND txn_date >= $` + strconv.Itoa(argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil {
		query += ` AND txn_date <= $` + strconv.Itoa(argIdx)
		args = append(args, *endDate)
	}
	query += ` GROUP BY txn_type ORDER BY txn_type;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	summary := make([]domain.CashFlowSummaryRow, 0)
	for rows.Next() {
		var row domain.CashFlowSummaryRow
		if err := rows.Scan(&row.TxnType, &row.TotalAmount, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}
	return summary, nil
}
