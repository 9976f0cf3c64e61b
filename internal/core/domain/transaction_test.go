package domain_test

import (
	"testing"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReconcileState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ReconcileState
		to   domain.ReconcileState
		want bool
	}{
		{"not reconciled to cleared", domain.NotReconciled, domain.Cleared, true},
		{"not reconciled directly to reconciled", domain.NotReconciled, domain.Reconciled, true},
		{"cleared to reconciled", domain.Cleared, domain.Reconciled, true},
		{"cleared back to not reconciled", domain.Cleared, domain.NotReconciled, false},
		{"reconciled is terminal", domain.Reconciled, domain.Cleared, false},
		{"reconciled back to not reconciled", domain.Reconciled, domain.NotReconciled, false},
		{"no self transition from not reconciled", domain.NotReconciled, domain.NotReconciled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReconcileState_IsValid(t *testing.T) {
	assert.True(t, domain.NotReconciled.IsValid())
	assert.True(t, domain.Cleared.IsValid())
	assert.True(t, domain.Reconciled.IsValid())
	assert.False(t, domain.ReconcileState("x").IsValid())
	assert.False(t, domain.ReconcileState("").IsValid())
}

func TestTransaction_ValueSum(t *testing.T) {
	txn := domain.Transaction{
		Splits: []domain.Split{
			{Value: mustNumeric(t, "50.00", 2)},
			{Value: mustNumeric(t, "-30.00", 2)},
			{Value: mustNumeric(t, "-20.00", 2)},
		},
	}
	assert.True(t, txn.ValueSum(2).IsZero())

	txn.Splits = append(txn.Splits, domain.Split{Value: mustNumeric(t, "0.01", 2)})
	sum := txn.ValueSum(2)
	assert.False(t, sum.IsZero())
	assert.Equal(t, "0.01", sum.StringFixed())
}

func TestTransaction_HasReconciledSplits(t *testing.T) {
	txn := domain.Transaction{
		Splits: []domain.Split{
			{ReconcileState: domain.NotReconciled},
			{ReconcileState: domain.NotReconciled},
		},
	}
	assert.False(t, txn.HasReconciledSplits())

	txn.Splits[1].ReconcileState = domain.Cleared
	assert.True(t, txn.HasReconciledSplits(), "cleared splits count as reconciled for the override warning")

	txn.Splits[1].ReconcileState = domain.Reconciled
	assert.True(t, txn.HasReconciledSplits())
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	debitNormal := []domain.AccountType{domain.Asset, domain.Bank, domain.Cash, domain.Receivable, domain.Stock, domain.Mutual, domain.Expense}
	for _, at := range debitNormal {
		assert.True(t, at.IsDebitNormal(), string(at))
	}
	creditNormal := []domain.AccountType{domain.Liability, domain.Credit, domain.Payable, domain.Income, domain.Equity}
	for _, at := range creditNormal {
		assert.False(t, at.IsDebitNormal(), string(at))
	}
}
