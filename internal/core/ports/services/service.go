package services

// ServiceContainer bundles the application services for route registration.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Commission  CommissionSvcFacade
	Category    CategorySvcFacade
	Reporting   ReportingSvcFacade
}
