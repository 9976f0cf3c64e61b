package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Commodity      CommoditySvcFacade
	Account        AccountSvcFacade
	Transaction    TransactionSvcFacade
	Balance        BalanceSvcFacade
	Reconciliation ReconciliationSvcFacade
	ExchangeRate   ExchangeRateSvcFacade
	BankFeed       BankFeedSvcFacade
}
