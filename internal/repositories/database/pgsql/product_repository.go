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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// Helper to convert domain.Product to models.Product for DB storage
func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		SKU:          d.SKU,
		Price:        d.Price,
		Cost:         d.Cost,
		Stock:        d.Stock,
		ReorderLevel: d.ReorderLevel,
		CategoryID:   d.CategoryID,
		SupplierID:   d.SupplierID,
		Description:  d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Product from DB to domain.Product
func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		SKU:          m.SKU,
		Price:        m.Price,
		Cost:         m.Cost,
		Stock:        m.Stock,
		ReorderLevel: m.ReorderLevel,
		CategoryID:   m.CategoryID,
		SupplierID:   m.SupplierID,
		Description:  m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, name, sku, price, cost, stock, reorder_level, category_id, supplier_id, description, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var m models.Product
	var reorderLevel sql.NullInt64
	var categoryID, supplierID sql.NullString

	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Price,
		&m.Cost,
		&m.Stock,
		&reorderLevel,
		&categoryID,
		&supplierID,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if reorderLevel.Valid {
		rl := reorderLevel.Int64
		m.ReorderLevel = &rl
	}
	m.CategoryID = categoryID.String
	m.SupplierID = supplierID.String
	return toDomainProduct(m), nil
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)

	query := `
		INSERT INTO products (product_id, name, sku, price, cost, stock, reorder_level, category_id, supplier_id, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.SKU,
		m.Price,
		m.Cost,
		m.Stock,
		nullableInt64(m.ReorderLevel),
		nullableString(m.CategoryID),
		nullableString(m.SupplierID),
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &product, nil
}

// FindProductsByIDs retrieves multiple products keyed by their IDs. Missing
// IDs are simply absent from the result map.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[product.ProductID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return productsMap, nil
}

// ListProducts retrieves products matching the filter, newest first.
func (r *PgxProductRepository) ListProducts(ctx context.Context, filter portsrepo.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.CategoryID != "" {
		query += ` AND category_id = $` + strconv.Itoa(argIdx)
		args = append(args, filter.CategoryID)
		argIdx++
	}
	if filter.MinPrice != nil {
		query += ` AND price >= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.MinPrice)
		argIdx++
	}
	if filter.MaxPrice != nil {
		query += ` AND price <= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.MaxPrice)
		argIdx++
	}
	if filter.LowStock {
		query += ` AND reorder_level IS NOT NULL AND stock < reorder_level`
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
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// UpdateProduct persists the product's mutable fields. SKU and stock are
// deliberately excluded; stock only moves through AdjustStock or an order's
// atomic unit.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, price = $3, cost = $4, reorder_level = $5, category_id = $6, supplier_id = $7, description = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Price,
		m.Cost,
		nullableInt64(m.ReorderLevel),
		nullableString(m.CategoryID),
		nullableString(m.SupplierID),
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", m.ProductID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product permanently.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustStock applies a single stock mutation and returns the updated row.
// Decrements are conditional so stock can never observe a negative value,
// even under concurrent adjustments.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID string, action domain.StockAction, quantity int64, userID string, now time.Time) (*domain.Product, error) {
	var query string
	switch action {
	case domain.StockIncrement:
		query = `
			UPDATE products
			SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
			WHERE product_id = $1
			RETURNING ` + productColumns + `;`
	case domain.StockDecrement:
		query = `
			UPDATE products
			SET stock = stock - $2, last_updated_at = $3, last_updated_by = $4
			WHERE product_id = $1 AND stock >= $2
			RETURNING ` + productColumns + `;`
	case domain.StockSet:
		query = `
			UPDATE products
			SET stock = $2, last_updated_at = $3, last_updated_by = $4
			WHERE product_id = $1
			RETURNING ` + productColumns + `;`
	default:
		return nil, fmt.Errorf("%w: unknown stock action %q", apperrors.ErrValidation, action)
	}

	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID, quantity, now, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows on a decrement is ambiguous: missing product or
			// insufficient stock. An existence probe disambiguates.
			if action == domain.StockDecrement {
				var exists bool
				probeErr := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1);`, productID).Scan(&exists)
				if probeErr != nil {
					return nil, fmt.Errorf("failed to probe product %s: %w", productID, probeErr)
				}
				if exists {
					return nil, apperrors.NewInsufficientStock(productID)
				}
			}
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}
	return &product, nil
}

// applyStockDeltasInTx applies signed per-product stock changes inside a
// caller-owned transaction. Negative deltas are conditional; a row that
// cannot cover its decrement aborts with an InsufficientStockError naming
// the product.
func applyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, userID string, now time.Time) error {
	decrQuery := `
		UPDATE products
		SET stock = stock - $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND stock >= $2;
	`
	incrQuery := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`

	for productID, delta := range deltas {
		if delta == 0 {
			continue
		}
		var ct pgconn.CommandTag
		var err error
		if delta < 0 {
			ct, err = tx.Exec(ctx, decrQuery, productID, -delta, now, userID)
		} else {
			ct, err = tx.Exec(ctx, incrQuery, productID, delta, now, userID)
		}
		if err != nil {
			return fmt.Errorf("failed to apply stock change for product %s: %w", productID, err)
		}
		if ct.RowsAffected() == 0 {
			if delta < 0 {
				var exists bool
				if probeErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1);`, productID).Scan(&exists); probeErr != nil {
					return fmt.Errorf("failed to probe product %s: %w", productID, probeErr)
				}
				if exists {
					return apperrors.NewInsufficientStock(productID)
				}
			}
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
	}
	return nil
}
