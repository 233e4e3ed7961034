package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	"github.com/DeveloperWK/product-inventory-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessOrderRepository struct {
	BaseRepository
}

// newPgxBusinessOrderRepository creates a new repository for purchase-side
// bookkeeping orders. Transaction links live in a join table and are written
// in the same unit as the order row.
func newPgxBusinessOrderRepository(pool *pgxpool.Pool) portsrepo.BusinessOrderRepositoryFacade {
	return &PgxBusinessOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessOrderRepositoryFacade = (*PgxBusinessOrderRepository)(nil)

func toDomainBusinessOrder(m models.BusinessOrder, related []string) domain.BusinessOrder {
	return domain.BusinessOrder{
		BusinessOrderID:     m.BusinessOrderID,
		Name:                m.Name,
		SupplierID:          m.SupplierID,
		OrderDate:           m.OrderDate,
		Due:                 m.Due,
		Payment:             m.Payment,
		Total:               m.Total,
		Discount:            m.Discount,
		Quantity:            m.Quantity,
		RelatedTransactions: related,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const businessOrderColumns = `business_order_id, name, supplier_id, order_date, due, payment, total, discount, quantity, created_at, created_by, last_updated_at, last_updated_by`

func scanBusinessOrder(row pgx.Row) (models.BusinessOrder, error) {
	var m models.BusinessOrder
	err := row.Scan(
		&m.BusinessOrderID,
		&m.Name,
		&m.SupplierID,
		&m.OrderDate,
		&m.Due,
		&m.Payment,
		&m.Total,
		&m.Discount,
		&m.Quantity,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBusinessOrder inserts the order row and its transaction links in one
// atomic unit.
func (r *PgxBusinessOrderRepository) SaveBusinessOrder(ctx context.Context, order domain.BusinessOrder) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO business_orders (` + businessOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		order.BusinessOrderID,
		order.Name,
		order.SupplierID,
		order.OrderDate,
		order.Due,
		order.Payment,
		order.Total,
		order.Discount,
		order.Quantity,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert business order "+order.BusinessOrderID, mapStoreError(err))
	}

	if err := r.insertLinksInTx(ctx, tx, order.BusinessOrderID, order.RelatedTransactions); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBusinessOrderRepository) insertLinksInTx(ctx context.Context, tx pgx.Tx, businessOrderID string, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, txnID := range transactionIDs {
		batch.Queue(`
			INSERT INTO business_order_transactions (business_order_id, transaction_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING;
		`, businessOrderID, txnID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to link transactions for business order "+businessOrderID, mapStoreError(err))
	}
	return nil
}

// FindBusinessOrderByID retrieves a business order with its transaction links.
func (r *PgxBusinessOrderRepository) FindBusinessOrderByID(ctx context.Context, businessOrderID string) (*domain.BusinessOrder, error) {
	query := `SELECT ` + businessOrderColumns + ` FROM business_orders WHERE business_order_id = $1;`

	m, err := scanBusinessOrder(r.Pool.QueryRow(ctx, query, businessOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business order by ID %s: %w", businessOrderID, err)
	}

	related, err := r.findLinks(ctx, businessOrderID)
	if err != nil {
		return nil, err
	}
	order := toDomainBusinessOrder(m, related)
	return &order, nil
}

func (r *PgxBusinessOrderRepository) findLinks(ctx context.Context, businessOrderID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_id FROM business_order_transactions
		WHERE business_order_id = $1 ORDER BY transaction_id;
	`, businessOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links for business order %s: %w", businessOrderID, err)
	}
	defer rows.Close()

	related := make([]string, 0)
	for rows.Next() {
		var txnID string
		if err := rows.Scan(&txnID); err != nil {
			return nil, fmt.Errorf("failed to scan link row for business order %s: %w", businessOrderID, err)
		}
		related = append(related, txnID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link rows for business order %s: %w", businessOrderID, err)
	}
	return related, nil
}

// ListBusinessOrders retrieves business orders matching the filter plus the
// unpaginated total, newest first.
func (r *PgxBusinessOrderRepository) ListBusinessOrders(ctx context.Context, filter portsrepo.BusinessOrderFilter) ([]domain.BusinessOrder, int64, error) {
	countQuery := `SELECT COUNT(*) FROM business_orders`
	query := `SELECT ` + businessOrderColumns + ` FROM business_orders`
	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if filter.SupplierID != "" {
		cond := ` WHERE supplier_id = $1`
		countQuery += cond
		query += cond
		args = append(args, filter.SupplierID)
		countArgs = append(countArgs, filter.SupplierID)
		argIdx++
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count business orders: %w", err)
	}

	query += ` ORDER BY order_date DESC`
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
		return nil, 0, fmt.Errorf("failed to list business orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.BusinessOrder, 0)
	for rows.Next() {
		m, err := scanBusinessOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan business order row: %w", err)
		}
		orders = append(orders, toDomainBusinessOrder(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating business order rows: %w", err)
	}
	return orders, total, nil
}

// UpdateBusinessOrder persists the order row and rewrites its transaction
// links in one atomic unit.
func (r *PgxBusinessOrderRepository) UpdateBusinessOrder(ctx context.Context, order domain.BusinessOrder) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE business_orders
		SET name = $2, due = $3, payment = $4, total = $5, discount = $6, quantity = $7, last_updated_at = $8, last_updated_by = $9
		WHERE business_order_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		order.BusinessOrderID,
		order.Name,
		order.Due,
		order.Payment,
		order.Total,
		order.Discount,
		order.Quantity,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update business order "+order.BusinessOrderID, mapStoreError(err))
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if order.RelatedTransactions != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM business_order_transactions WHERE business_order_id = $1;`, order.BusinessOrderID); err != nil {
			return apperrors.NewAppError(500, "failed to clear links for business order "+order.BusinessOrderID, err)
		}
		if err := r.insertLinksInTx(ctx, tx, order.BusinessOrderID, order.RelatedTransactions); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteBusinessOrder removes the order; links cascade with the row.
func (r *PgxBusinessOrderRepository) DeleteBusinessOrder(ctx context.Context, businessOrderID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM business_orders WHERE business_order_id = $1;`, businessOrderID)
	if err != nil {
		return fmt.Errorf("failed to delete business order %s: %w", businessOrderID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
