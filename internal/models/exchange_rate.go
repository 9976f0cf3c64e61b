package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a row of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	FromCode       string          `db:"from_code"`
	ToCode         string          `db:"to_code"`
	Rate           decimal.Decimal `db:"rate"`
	DateEffective  time.Time       `db:"date_effective"`
	AuditFields
}

// StatementBalance represents a row of the statement_balances table, one per
// account holding the latest externally reported balance.
type StatementBalance struct {
	AccountID    string    `db:"account_id"`
	BalanceNum   int64     `db:"balance_num"`
	BalanceDenom int64     `db:"balance_denom"`
	AsOfDate     time.Time `db:"as_of_date"`
	ReportedAt   time.Time `db:"reported_at"`
	ReportedBy   string    `db:"reported_by"`
}
