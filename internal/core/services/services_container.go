package services

import (
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Commodity service first since nearly everything needs fraction lookups
	container.Commodity = NewCommodityService(repos.CommodityRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Commodity,
	)

	// The balance service doubles as the invalidator the write paths notify
	balanceSvc := NewBalanceService(
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Commodity,
	)
	container.Balance = balanceSvc

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.Account,
		container.Commodity,
		balanceSvc,
	)

	container.BankFeed = NewBankFeedService(
		repos.StatementRepo,
		container.Account,
		container.Commodity,
	)

	container.Reconciliation = NewReconciliationService(
		repos.TransactionRepo,
		container.Account,
		container.Commodity,
		container.BankFeed,
		balanceSvc,
	)

	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		container.Commodity,
	)

	return container
}
