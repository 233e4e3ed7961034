package pgsql

import (
	"context"
	"fmt"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates the read-side reporting repository. It only
// ever reads committed state; projections are allowed to lag writes.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetDashboardTotals aggregates product and order counts in two queries.
func (r *reportingRepository) GetDashboardTotals(ctx context.Context) (*domain.DashboardTotals, error) {
	totals := &domain.DashboardTotals{}

	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(stock), 0) FROM products;
	`).Scan(&totals.Products.Total, &totals.Products.TotalStock)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate product totals: %w", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'processing'),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'returned')
		FROM orders;
	`).Scan(
		&totals.Orders.Total,
		&totals.Orders.Status.Processing,
		&totals.Orders.Status.Delivered,
		&totals.Orders.Status.Cancelled,
		&totals.Orders.Status.Completed,
		&totals.Orders.Status.Returned,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order totals: %w", err)
	}

	return totals, nil
}
