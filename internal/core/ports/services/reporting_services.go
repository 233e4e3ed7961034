package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
)

// ReportingSvcFacade serves the dashboard read-side projection.
type ReportingSvcFacade interface {
	// GetDashboardTotals returns aggregate product and order counts. Results
	// may be served from a short-lived cache.
	GetDashboardTotals(ctx context.Context) (*domain.DashboardTotals, error)
}
