package domain

// Commodity is anything an account can be denominated in: a currency, a stock,
// a fund share. Fraction is the number of decimal places amounts in this
// commodity are stored and displayed with (2 for USD, often 0 or 4+ for
// securities). Fraction is immutable once any split references the commodity.
type Commodity struct {
	Code     string `json:"code"`   // Primary key, e.g. "USD", "AAPL"
	Name     string `json:"name"`   // e.g. "US Dollar"
	Symbol   string `json:"symbol"` // e.g. "$"
	Fraction int32  `json:"fraction"`
	AuditFields
}
