package services

import (
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, courier portssvc.CourierBooker, cache portssvc.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo, cache)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo)
	container.Order = NewOrderService(repos.OrderRepo, repos.ProductRepo, repos.TransactionRepo, courier, cache)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.BusinessOrder = NewBusinessOrderService(repos.BusinessOrderRepo, repos.SupplierRepo)
	container.User = NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration)
	container.Reporting = NewReportingService(repos.ReportingRepo, cache)

	return container
}
