package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartReconciliationRequest opens a session for an account. TargetBalance is
// the statement balance to reconcile against; when omitted, the latest
// externally reported balance for the account is used.
type StartReconciliationRequest struct {
	AccountID     string           `json:"accountID" binding:"required"`
	TargetBalance *decimal.Decimal `json:"targetBalance,omitempty"`
}

// ToggleSplitRequest adds or removes one split from a session's selection.
type ToggleSplitRequest struct {
	SplitID string `json:"splitID" binding:"required"`
}

// ReconciliationSessionResponse is the API view of a live session.
type ReconciliationSessionResponse struct {
	SessionID        string    `json:"sessionID"`
	AccountID        string    `json:"accountID"`
	TargetBalance    string    `json:"targetBalance"`
	PriorReconciled  string    `json:"priorReconciled"`
	SelectedSum      string    `json:"selectedSum"`
	Difference       string    `json:"difference"`
	CanComplete      bool      `json:"canComplete"`
	SelectedSplitIDs []string  `json:"selectedSplitIDs"`
	StartedAt        time.Time `json:"startedAt"`
}

// RecordStatementRequest is the bank-feed collaborator's input: the balance
// an external statement reports for an account as of a date.
type RecordStatementRequest struct {
	Balance  decimal.Decimal `json:"balance" binding:"required"`
	AsOfDate time.Time       `json:"asOfDate" binding:"required"`
}

// StatementBalanceResponse is the API view of a reported balance.
type StatementBalanceResponse struct {
	AccountID string    `json:"accountID"`
	Balance   string    `json:"balance"`
	AsOfDate  time.Time `json:"asOfDate"`
}
