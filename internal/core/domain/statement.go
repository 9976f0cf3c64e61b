package domain

import "time"

// StatementBalance is the balance an external feed reported for an account,
// as of a statement date. It seeds the target of a reconciliation session.
type StatementBalance struct {
	AccountID string    `json:"accountID"`
	Balance   Numeric   `json:"balance"` // In the account's commodity
	AsOfDate  time.Time `json:"asOfDate"`
	AuditFields
}

// AccountSplit is a split joined with its transaction's posting metadata, the
// shape the aggregator and reconciliation workflows read per account.
type AccountSplit struct {
	Split
	PostDate               time.Time `json:"postDate"`
	TransactionDescription string    `json:"transactionDescription"`
}
