package services

import (
	"context"

	"github.com/finchbooks/finch/internal/dto"
)

// BalanceSvcFacade exposes the hierarchical balance rollup.
type BalanceSvcFacade interface {
	// AccountTreeBalances computes per-account and aggregated balances for
	// the query's date range, respecting hidden-account visibility and
	// applying the requested presentation reversal at the boundary.
	AccountTreeBalances(ctx context.Context, query dto.BalanceQuery) (*dto.BalanceReport, error)
}

// BalanceInvalidator is implemented by the balance service and consumed by
// writers: any committed change to transactions or splits drops memoized
// rollups so the next read recomputes.
type BalanceInvalidator interface {
	InvalidateBalances()
}
