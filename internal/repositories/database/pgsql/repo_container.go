package pgsql

import (
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		CommodityRepo:    newPgxCommodityRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		StatementRepo:    newPgxStatementRepository(dbPool),
	}
}
