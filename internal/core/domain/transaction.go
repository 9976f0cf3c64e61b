package domain

import "time"

// ReconcileState is the per-split reconciliation state machine:
// n -> c -> y, or n -> y directly. y is terminal for ordinary edits.
type ReconcileState string

const (
	NotReconciled ReconcileState = "n"
	Cleared       ReconcileState = "c"
	Reconciled    ReconcileState = "y"
)

// IsValid reports whether s is one of the three reconcile states.
func (s ReconcileState) IsValid() bool {
	return s == NotReconciled || s == Cleared || s == Reconciled
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next without an override acknowledgement.
func (s ReconcileState) CanTransitionTo(next ReconcileState) bool {
	switch s {
	case NotReconciled:
		return next == Cleared || next == Reconciled
	case Cleared:
		return next == Reconciled
	default:
		return false
	}
}

// Split is one debit/credit line of a transaction, tied to exactly one
// account. Value is expressed in the transaction's currency, Quantity in the
// owning account's commodity; the two are equal unless the split crosses
// currencies, in which case the caller captured quantity = value * rate at
// authoring time.
type Split struct {
	SplitID        string         `json:"splitID"` // Primary key (UUID)
	TransactionID  string         `json:"transactionID"`
	AccountID      string         `json:"accountID"`
	Value          Numeric        `json:"value"`
	Quantity       Numeric        `json:"quantity"`
	Memo           string         `json:"memo"`
	Action         string         `json:"action"`
	ReconcileState ReconcileState `json:"reconcileState"`
}

// Transaction is a single balanced financial event of two or more splits.
// EnteredAt is assigned once at creation and never mutated. The split list is
// ordered for display only; its order carries no accounting meaning.
type Transaction struct {
	TransactionID string    `json:"transactionID"` // Primary key (UUID)
	CurrencyCode  string    `json:"currencyCode"`  // Transaction currency (a commodity code)
	PostDate      time.Time `json:"postDate"`      // Calendar date, no time component
	Description   string    `json:"description"`
	ReferenceNum  string    `json:"referenceNum"`
	EnteredAt     time.Time `json:"enteredAt"`
	Splits        []Split   `json:"splits"`
	AuditFields
}

// ValueSum returns the exact sum of split values in the transaction currency.
func (t Transaction) ValueSum(fraction int32) Numeric {
	sum := ZeroNumeric(fraction)
	for _, s := range t.Splits {
		sum = sum.Add(s.Value)
	}
	return sum
}

// HasReconciledSplits reports whether any split is cleared or reconciled,
// meaning edits should be preceded by an override warning.
func (t Transaction) HasReconciledSplits() bool {
	for _, s := range t.Splits {
		if s.ReconcileState == Cleared || s.ReconcileState == Reconciled {
			return true
		}
	}
	return false
}
