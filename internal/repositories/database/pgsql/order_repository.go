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
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for orders and their items.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func toModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		OrderType:     string(d.OrderType),
		TotalAmount:   d.TotalAmount,
		Status:        string(d.Status),
		PaymentStatus: string(d.PaymentStatus),
		TransactionID: d.TransactionID,
		ConsignmentID: d.ConsignmentID,
		TrackingCode:  d.TrackingCode,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		OrderType:     domain.OrderType(m.OrderType),
		TotalAmount:   m.TotalAmount,
		Status:        domain.OrderStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TransactionID: m.TransactionID,
		ConsignmentID: m.ConsignmentID,
		TrackingCode:  m.TrackingCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const orderColumns = `order_id, order_type, total_amount, status, payment_status, transaction_id, consignment_id, tracking_code, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var m models.Order
	var transactionID, consignmentID, trackingCode sql.NullString

	err := row.Scan(
		&m.OrderID,
		&m.OrderType,
		&m.TotalAmount,
		&m.Status,
		&m.PaymentStatus,
		&transactionID,
		&consignmentID,
		&trackingCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Order{}, err
	}
	m.TransactionID = transactionID.String
	m.ConsignmentID = consignmentID.String
	m.TrackingCode = trackingCode.String
	return toDomainOrder(m), nil
}

// SaveOrder persists the order and its items; for every entry of decrements
// it subtracts stock conditionally in the same atomic unit. The first line
// that cannot be covered aborts everything with an InsufficientStockError.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order, decrements map[string]int64) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelOrder(order)
	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, orderQuery,
		m.OrderID,
		m.OrderType,
		m.TotalAmount,
		m.Status,
		m.PaymentStatus,
		nullableString(m.TransactionID),
		nullableString(m.ConsignmentID),
		nullableString(m.TrackingCode),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+m.OrderID, mapStoreError(err))
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO order_items (order_id, line_no, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5);
	`
	for i, item := range order.Items {
		batch.Queue(itemQuery, order.OrderID, i+1, item.ProductID, item.Quantity, item.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for order "+m.OrderID, mapStoreError(err))
	}

	deltas := make(map[string]int64, len(decrements))
	for productID, qty := range decrements {
		deltas[productID] = -qty
	}
	if err := applyStockDeltasInTx(ctx, tx, deltas, order.CreatedBy, order.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateOrder persists status and payment changes and restores stock for
// every entry of restores in the same atomic unit.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order, restores map[string]int64) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelOrder(order)
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, transaction_id = $4, consignment_id = $5, tracking_code = $6, last_updated_at = $7, last_updated_by = $8
		WHERE order_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		m.OrderID,
		m.Status,
		m.PaymentStatus,
		nullableString(m.TransactionID),
		nullableString(m.ConsignmentID),
		nullableString(m.TrackingCode),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+m.OrderID, mapStoreError(err))
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyStockDeltasInTx(ctx, tx, positiveDeltas(restores), order.LastUpdatedBy, order.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteOrder restores stock for every entry of restores, then removes the
// order; items cascade with the row.
func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string, restores map[string]int64, userID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyStockDeltasInTx(ctx, tx, positiveDeltas(restores), userID, now); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM orders WHERE order_id = $1;`, orderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete order "+orderID, mapStoreError(err))
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order with its items, line order preserved.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	order, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	items, err := r.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PgxOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_no;
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan item row for order %s: %w", orderID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for order %s: %w", orderID, err)
	}
	return items, nil
}

// ListOrders retrieves orders matching the filter, newest first. Items are
// fetched in one batch to avoid a query per order.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.OrderType != "" {
		query += ` AND order_type = $` + strconv.Itoa(argIdx)
		args = append(args, filter.OrderType)
		argIdx++
	}
	if filter.Status != "" {
		query += ` AND status = $` + strconv.Itoa(argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	query += ` ORDER BY created_at DESC`
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
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	orderIndex := make(map[string]int)
	orderIDs := make([]string, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orderIndex[order.OrderID] = len(orders)
		orderIDs = append(orderIDs, order.OrderID)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}

	itemRows, err := r.Pool.Query(ctx, `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no;
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		if idx, ok := orderIndex[orderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return orders, nil
}

func positiveDeltas(restores map[string]int64) map[string]int64 {
	deltas := make(map[string]int64, len(restores))
	for productID, qty := range restores {
		deltas[productID] = qty
	}
	return deltas
}
