package dto

import "time"

// BalanceQuery selects the reporting range and presentation options for the
// account balance rollup. Reversal and SortBy are presentation transforms;
// they never change stored ledger values.
type BalanceQuery struct {
	StartDate  time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
	ShowHidden bool      `form:"showHidden"`
	Reversal   string    `form:"reversal" binding:"omitempty,balancereversal"`
	SortBy     string    `form:"sortBy" binding:"omitempty,sortkey"`
}

// AccountBalanceNode is one account's balances plus its ordered children.
// Own* are this account's splits only; Aggregated* include visible
// descendants. Amounts are exact decimal strings in the account's commodity,
// after the requested balance reversal.
type AccountBalanceNode struct {
	AccountID        string               `json:"accountID"`
	Name             string               `json:"name"`
	AccountType      string               `json:"accountType"`
	CommodityCode    string               `json:"commodityCode"`
	OwnTotal         string               `json:"ownTotal"`
	OwnPeriod        string               `json:"ownPeriod"`
	AggregatedTotal  string               `json:"aggregatedTotal"`
	AggregatedPeriod string               `json:"aggregatedPeriod"`
	Children         []AccountBalanceNode `json:"children,omitempty"`
}

// BalanceReport is the full rollup for a query, rooted at the top-level
// accounts under ROOT.
type BalanceReport struct {
	StartDate time.Time            `json:"startDate"`
	EndDate   time.Time            `json:"endDate"`
	Accounts  []AccountBalanceNode `json:"accounts"`
}
