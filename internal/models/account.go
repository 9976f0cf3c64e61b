package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account represents a row of the accounts table.
// ParentAccountID uses string for the nullable self-referencing foreign key.
type Account struct {
	AccountID       string      `db:"account_id"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	CommodityCode   string      `db:"commodity_code"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	Description     string      `db:"description"`
	Hidden          bool        `db:"hidden"`
	Placeholder     bool        `db:"placeholder"`
	AuditFields
}
