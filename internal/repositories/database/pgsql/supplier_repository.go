package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	"github.com/DeveloperWK/product-inventory-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func toDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:   m.SupplierID,
		Name:         m.Name,
		Contact:      m.Contact,
		PaymentTerms: m.PaymentTerms,
		Address:      m.Address,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const supplierColumns = `supplier_id, name, contact, payment_terms, address, notes, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var m models.Supplier
	var address, notes sql.NullString

	err := row.Scan(
		&m.SupplierID,
		&m.Name,
		&m.Contact,
		&m.PaymentTerms,
		&address,
		&notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Supplier{}, err
	}
	m.Address = address.String
	m.Notes = notes.String
	return toDomainSupplier(m), nil
}

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		supplier.SupplierID,
		supplier.Name,
		supplier.Contact,
		supplier.PaymentTerms,
		nullableString(supplier.Address),
		nullableString(supplier.Notes),
		supplier.IsActive,
		supplier.CreatedAt,
		supplier.CreatedBy,
		supplier.LastUpdatedAt,
		supplier.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supplier named %q already exists", apperrors.ErrDuplicate, supplier.Name)
		}
		return fmt.Errorf("failed to save supplier %s: %w", supplier.SupplierID, err)
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`

	supplier, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID %s: %w", supplierID, err)
	}
	return &supplier, nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, filter portsrepo.SupplierFilter) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	args := []interface{}{}
	if filter.IsActive != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0)
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}
	return suppliers, nil
}

func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, payment_terms = $4, address = $5, notes = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE supplier_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		supplier.SupplierID,
		supplier.Name,
		supplier.Contact,
		supplier.PaymentTerms,
		nullableString(supplier.Address),
		nullableString(supplier.Notes),
		supplier.IsActive,
		supplier.LastUpdatedAt,
		supplier.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier %s: %w", supplier.SupplierID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
