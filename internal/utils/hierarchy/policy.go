// Package hierarchy holds the pure predicate helpers for the chart of
// accounts: visibility, split-holding eligibility and sibling ordering. It is
// consumed by the balance aggregator and by tree-rendering callers, and is
// not independently stateful.
package hierarchy

import "github.com/finchbooks/finch/internal/core/domain"

// SortKey selects the ordering of sibling accounts.
type SortKey string

const (
	SortByName          SortKey = "name"
	SortByTotalBalance  SortKey = "totalBalance"
	SortByPeriodBalance SortKey = "periodBalance"
)

// IsValid reports whether k is a known sort key.
func (k SortKey) IsValid() bool {
	return k == SortByName || k == SortByTotalBalance || k == SortByPeriodBalance
}

// IsVisible reports whether an account participates in aggregation and
// rendering. Hidden accounts are excluded unless the caller asks for them.
func IsVisible(acc domain.Account, showHidden bool) bool {
	return showHidden || !acc.Hidden
}

// CanHoldSplits reports whether an account may own splits directly.
// Placeholder accounts and the ROOT account only structure the tree.
func CanHoldSplits(acc domain.Account) bool {
	return !acc.Placeholder && acc.AccountType != domain.Root
}

// Balances supplies the aggregated amounts Less needs for balance-keyed
// ordering. Implemented by the aggregator's report nodes.
type Balances interface {
	TotalOf(accountID string) domain.Numeric
	PeriodOf(accountID string) domain.Numeric
}

// Less orders two sibling accounts by the given key, tie-breaking by name so
// the ordering is stable across recomputation.
func Less(a, b domain.Account, key SortKey, balances Balances) bool {
	switch key {
	case SortByTotalBalance:
		if c := balances.TotalOf(a.AccountID).Cmp(balances.TotalOf(b.AccountID)); c != 0 {
			return c < 0
		}
	case SortByPeriodBalance:
		if c := balances.PeriodOf(a.AccountID).Cmp(balances.PeriodOf(b.AccountID)); c != 0 {
			return c < 0
		}
	}
	return a.Name < b.Name
}
