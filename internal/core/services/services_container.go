package services

import (
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	catalogSvc portssvc.CatalogSvcFacade,
	remoteRender portssvc.RemoteRenderSvc,
	localRender portssvc.ReportRenderer,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CategoryRepo)
	container.Commission = NewCommissionService(repos.CommissionRepo, catalogSvc)
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.CommissionRepo, remoteRender, localRender)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.CommissionSvcFacade  = (*commissionService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.ReportingSvcFacade   = (*reportingService)(nil)
)
