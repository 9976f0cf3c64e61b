package repositories

// RepositoryProvider holds all the repository facades for the services layer.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	CommodityRepo    CommodityRepository
	TransactionRepo  TransactionRepositoryFacade
	ExchangeRateRepo ExchangeRateRepository
	StatementRepo    StatementRepository
}
