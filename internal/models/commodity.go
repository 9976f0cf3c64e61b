package models

// Commodity represents a row of the commodities table.
type Commodity struct {
	Code     string `db:"code"`
	Name     string `db:"name"`
	Symbol   string `db:"symbol"`
	Fraction int32  `db:"fraction"`
	AuditFields
}
