package services

import (
	"context"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccountTree(ctx context.Context, params dto.ListAccountsParams) ([]dto.AccountTreeNode, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// CommoditySvcFacade exposes commodity operations.
type CommoditySvcFacade interface {
	CreateCommodity(ctx context.Context, req dto.CreateCommodityRequest, creatorUserID string) (*domain.Commodity, error)
	GetCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error)
	ListCommodities(ctx context.Context) ([]domain.Commodity, error)
	UpdateCommodity(ctx context.Context, code string, req dto.UpdateCommodityRequest, userID string) (*domain.Commodity, error)
}
