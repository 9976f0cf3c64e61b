package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is an authored quote between two commodities, effective from a
// given date. Quotes are consulted by callers when authoring cross-currency
// splits; the balance validator never reads them.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary key (UUID)
	FromCode       string          `json:"fromCode"`
	ToCode         string          `json:"toCode"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
