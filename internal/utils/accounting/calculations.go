package accounting

import (
	"fmt"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/utils/hierarchy"
)

// ValidateTransaction enforces the double-entry invariants over a fully
// proposed transaction. It is pure logic over its inputs: accounts is the
// caller-fetched map of every account referenced by a split, currencyFraction
// the fraction of the transaction currency.
//
// Checks, in order:
//   - at least two splits, each referencing a known account;
//   - no split on a placeholder or ROOT account;
//   - value == quantity whenever the account commodity equals the
//     transaction currency (cross-currency pairs are trusted as authored);
//   - the sum of split values is exactly zero.
func ValidateTransaction(txn domain.Transaction, accounts map[string]domain.Account, currencyFraction int32) error {
	bound := 0
	for _, split := range txn.Splits {
		if _, ok := accounts[split.AccountID]; ok {
			bound++
		}
	}
	if bound < 2 {
		return apperrors.ErrInsufficientSplits
	}

	for _, split := range txn.Splits {
		acc, ok := accounts[split.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s referenced by split %s", apperrors.ErrNotFound, split.AccountID, split.SplitID)
		}
		if !hierarchy.CanHoldSplits(acc) {
			return fmt.Errorf("%w: account %s cannot hold splits directly", apperrors.ErrValidation, acc.AccountID)
		}
		if acc.CommodityCode == txn.CurrencyCode && !split.Value.Equal(split.Quantity) {
			return fmt.Errorf("%w: split %s value %s differs from quantity %s in a same-currency account",
				apperrors.ErrValidation, split.SplitID, split.Value.StringFixed(), split.Quantity.StringFixed())
		}
	}

	sum := txn.ValueSum(currencyFraction)
	if !sum.IsZero() {
		return &apperrors.UnbalancedError{Difference: sum.Decimal()}
	}
	return nil
}

// BalanceReversal selects which account types get their displayed sign
// flipped so balances read intuitively to end users. Stored ledger values are
// never changed; this is a presentation-layer transform only.
type BalanceReversal string

const (
	// ReversalNone shows raw stored signs.
	ReversalNone BalanceReversal = "none"
	// ReversalCredit flips every credit-normal type (liability, equity,
	// income families).
	ReversalCredit BalanceReversal = "credit"
	// ReversalIncomeExpense flips only income and expense accounts.
	ReversalIncomeExpense BalanceReversal = "income_expense"
)

// IsValid reports whether r is a known reversal policy.
func (r BalanceReversal) IsValid() bool {
	return r == ReversalNone || r == ReversalCredit || r == ReversalIncomeExpense
}

// ShouldReverse reports whether the policy flips the displayed sign for the
// given account type.
func (r BalanceReversal) ShouldReverse(t domain.AccountType) bool {
	switch r {
	case ReversalCredit:
		return !t.IsDebitNormal() && t != domain.Root && t != domain.Trading
	case ReversalIncomeExpense:
		return t == domain.Income || t == domain.Expense
	default:
		return false
	}
}

// DisplayAmount applies the reversal policy to a stored quantity.
func DisplayAmount(n domain.Numeric, t domain.AccountType, policy BalanceReversal) domain.Numeric {
	if policy.ShouldReverse(t) {
		return n.Neg()
	}
	return n
}
