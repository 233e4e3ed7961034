package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for cash account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.CashAccount) models.CashAccount {
	return models.CashAccount{
		AccountID:     d.AccountID,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		Balance:       d.Balance,
		Currency:      d.Currency,
		AccountNumber: d.AccountNumber,
		Institution:   d.Institution,
		IsActive:      d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.CashAccount) domain.CashAccount {
	return domain.CashAccount{
		AccountID:     m.AccountID,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Currency:      m.Currency,
		AccountNumber: m.AccountNumber,
		Institution:   m.Institution,
		IsActive:      m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, name, account_type, balance, currency, account_number, institution, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.CashAccount, error) {
	var m models.CashAccount
	var accountNumber, institution sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.Currency,
		&accountNumber,
		&institution,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CashAccount{}, err
	}
	m.AccountNumber = accountNumber.String
	m.Institution = institution.String
	return toDomainAccount(m), nil
}

// SaveAccount inserts a new cash account with its opening balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO cash_accounts (account_id, name, account_type, balance, currency, account_number, institution, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.Balance,
		m.Currency,
		nullableString(m.AccountNumber),
		nullableString(m.Institution),
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a cash account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = $1;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &account, nil
}

// ListAccounts retrieves cash accounts matching the filter.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.AccountType != "" {
		query += ` AND account_type = $` + strconv.Itoa(argIdx)
		args = append(args, filter.AccountType)
		argIdx++
	}
	if filter.IsActive != nil {
		query += ` AND is_active = $` + strconv.Itoa(argIdx)
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.CashAccount, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction. Rows are locked in
// account_id order so opposing units acquire them in the same sequence and
// cannot deadlock each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CashAccount{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.CashAccount)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[account.AccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		for _, id := range accountIDs {
			if _, ok := accountsMap[id]; !ok {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return accountsMap, nil
}

// ApplyBalanceDeltasInTx applies signed balance changes for multiple accounts
// within a caller-owned transaction. Callers are expected to have locked the
// rows first via FindAccountsByIDsForUpdate.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE cash_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(deltas))
	for accountID, delta := range deltas {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
