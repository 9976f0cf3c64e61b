package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset      AccountType = "ASSET"
	Bank       AccountType = "BANK"
	Cash       AccountType = "CASH"
	Receivable AccountType = "RECEIVABLE"
	Stock      AccountType = "STOCK"
	Mutual     AccountType = "MUTUAL"
	Liability  AccountType = "LIABILITY"
	Credit     AccountType = "CREDIT"
	Payable    AccountType = "PAYABLE"
	Income     AccountType = "INCOME"
	Expense    AccountType = "EXPENSE"
	Equity     AccountType = "EQUITY"
	Trading    AccountType = "TRADING"
	Root       AccountType = "ROOT"
)

// accountTypes is the closed set of valid account types.
var accountTypes = map[AccountType]struct{}{
	Asset: {}, Bank: {}, Cash: {}, Receivable: {}, Stock: {}, Mutual: {},
	Liability: {}, Credit: {}, Payable: {}, Income: {}, Expense: {},
	Equity: {}, Trading: {}, Root: {},
}

// IsValid reports whether t is one of the closed set of account types.
func (t AccountType) IsValid() bool {
	_, ok := accountTypes[t]
	return ok
}

// IsDebitNormal reports whether accounts of this type carry a positive stored
// balance when debited. Asset-family and expense accounts are debit-normal;
// liability, equity and income family accounts are credit-normal and store
// credits as negative quantities.
func (t AccountType) IsDebitNormal() bool {
	switch t {
	case Asset, Bank, Cash, Receivable, Stock, Mutual, Expense:
		return true
	default:
		return false
	}
}

// Account is one node in the chart of accounts. Every non-ROOT account has
// exactly one parent and the tree is acyclic. CommodityCode is fixed at
// creation time and never mutated. Placeholder accounts structure the tree but
// cannot own splits directly.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary key (UUID)
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	CommodityCode   string      `json:"commodityCode"`
	ParentAccountID string      `json:"parentAccountID"` // Empty only for ROOT
	Description     string      `json:"description"`
	Hidden          bool        `json:"hidden"`
	Placeholder     bool        `json:"placeholder"`
	AuditFields
}
