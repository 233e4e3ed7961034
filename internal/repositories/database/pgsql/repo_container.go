package pgsql

import (
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	orderRepo := newPgxOrderRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	businessOrderRepo := newPgxBusinessOrderRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:       productRepo,
		CategoryRepo:      categoryRepo,
		AccountRepo:       accountRepo,
		TransactionRepo:   transactionRepo,
		OrderRepo:         orderRepo,
		SupplierRepo:      supplierRepo,
		BusinessOrderRepo: businessOrderRepo,
		UserRepo:          userRepo,
		ReportingRepo:     reportingRepo,
	}
}
