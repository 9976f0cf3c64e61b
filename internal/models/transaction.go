package models

import "time"

// Transaction represents a row of the transactions table. VersionStamp is the
// optimistic-concurrency column, refreshed on every committed write;
// EnteredAt never changes after insert.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	CurrencyCode  string    `db:"currency_code"`
	PostDate      time.Time `db:"post_date"`
	Description   string    `db:"description"`
	ReferenceNum  string    `db:"reference_num"`
	EnteredAt     time.Time `db:"entered_at"`
	VersionStamp  time.Time `db:"version_stamp"`
	AuditFields
}

// Split represents a row of the splits table. Amounts are stored as the
// rational numerator/denominator pair, denominator a power of ten fixed by
// the commodity fraction.
type Split struct {
	SplitID        string `db:"split_id"`
	TransactionID  string `db:"transaction_id"`
	AccountID      string `db:"account_id"`
	ValueNum       int64  `db:"value_num"`
	ValueDenom     int64  `db:"value_denom"`
	QuantityNum    int64  `db:"quantity_num"`
	QuantityDenom  int64  `db:"quantity_denom"`
	Memo           string `db:"memo"`
	Action         string `db:"action"`
	ReconcileState string `db:"reconcile_state"`
}
