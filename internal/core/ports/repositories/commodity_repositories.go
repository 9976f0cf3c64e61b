package repositories

import (
	"context"
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
)

// CommodityRepository defines storage operations for commodities.
type CommodityRepository interface {
	SaveCommodity(ctx context.Context, commodity domain.Commodity) error
	FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error)
	FindCommoditiesByCodes(ctx context.Context, codes []string) (map[string]domain.Commodity, error)
	ListCommodities(ctx context.Context) ([]domain.Commodity, error)
	UpdateCommodity(ctx context.Context, commodity domain.Commodity) error

	// IsCommodityReferenced reports whether any account or split references
	// the commodity. Referenced commodities are immutable.
	IsCommodityReferenced(ctx context.Context, code string) (bool, error)
}

// ExchangeRateRepository defines storage operations for authored rate quotes.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	// FindRate returns the latest quote from -> to effective on or before date.
	FindRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error)
}

// StatementRepository defines storage for externally reported balances.
type StatementRepository interface {
	UpsertStatementBalance(ctx context.Context, balance domain.StatementBalance) error
	FindStatementBalance(ctx context.Context, accountID string) (*domain.StatementBalance, error)
}
