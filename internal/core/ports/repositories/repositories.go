package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProductRepo       ProductRepositoryFacade
	CategoryRepo      CategoryRepositoryFacade
	AccountRepo       AccountRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	OrderRepo         OrderRepositoryFacade
	SupplierRepo      SupplierRepositoryFacade
	BusinessOrderRepo BusinessOrderRepositoryFacade
	UserRepo          UserRepositoryFacade
	ReportingRepo     ReportingRepositoryFacade
}
