package repositories

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
)

// SupplierFilter narrows supplier listings.
type SupplierFilter struct {
	IsActive *bool
}

// SupplierRepositoryFacade is the persistence surface for suppliers.
type SupplierRepositoryFacade interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, filter SupplierFilter) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
}

// BusinessOrderFilter narrows business-order listings.
type BusinessOrderFilter struct {
	SupplierID string
	Limit      int
	Offset     int
}

// BusinessOrderRepositoryFacade is the persistence surface for purchase-side
// bookkeeping orders, including their transaction links.
type BusinessOrderRepositoryFacade interface {
	SaveBusinessOrder(ctx context.Context, order domain.BusinessOrder) error
	FindBusinessOrderByID(ctx context.Context, businessOrderID string) (*domain.BusinessOrder, error)
	ListBusinessOrders(ctx context.Context, filter BusinessOrderFilter) ([]domain.BusinessOrder, int64, error)
	UpdateBusinessOrder(ctx context.Context, order domain.BusinessOrder) error
	DeleteBusinessOrder(ctx context.Context, businessOrderID string) error
}

// UserRepositoryFacade is the persistence surface for API users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ReportingRepositoryFacade serves read-side projections; no atomic unit needed.
type ReportingRepositoryFacade interface {
	GetDashboardTotals(ctx context.Context) (*domain.DashboardTotals, error)
}
