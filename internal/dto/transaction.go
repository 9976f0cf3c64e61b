package dto

import (
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSplitRequest is one proposed debit/credit line. Value is expressed in
// the transaction currency; Quantity in the owning account's commodity and
// may be omitted when the two are the same commodity. For cross-currency
// splits the caller supplies the quantity it computed from the exchange rate
// at authoring time.
type CreateSplitRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	Value     decimal.Decimal  `json:"value" binding:"required"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Memo      string           `json:"memo,omitempty"`
	Action    string           `json:"action,omitempty"`
	// SplitID is set on updates to preserve the reconcile state of a kept
	// split; new splits leave it empty.
	SplitID string `json:"splitID,omitempty"`
}

// CreateTransactionRequest proposes a complete transaction. This is the one
// canonical N-split construction API; two-split conveniences are built on
// top of it, never beside it.
type CreateTransactionRequest struct {
	CurrencyCode string               `json:"currencyCode" binding:"required"`
	PostDate     time.Time            `json:"postDate" binding:"required"`
	Description  string               `json:"description" binding:"required"`
	ReferenceNum string               `json:"referenceNum,omitempty"`
	Splits       []CreateSplitRequest `json:"splits" binding:"required,min=2,dive"`
}

// NewSimpleTransactionRequest is the two-split convenience: amount moves from
// one account to another in a single currency.
func NewSimpleTransactionRequest(currencyCode string, postDate time.Time, description string, fromAccountID, toAccountID string, amount decimal.Decimal) CreateTransactionRequest {
	return CreateTransactionRequest{
		CurrencyCode: currencyCode,
		PostDate:     postDate,
		Description:  description,
		Splits: []CreateSplitRequest{
			{AccountID: toAccountID, Value: amount},
			{AccountID: fromAccountID, Value: amount.Neg()},
		},
	}
}

// UpdateTransactionRequest replaces a transaction's header and splits. Version
// must be the token returned by the read the edit was based on.
type UpdateTransactionRequest struct {
	Version      string               `json:"version" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"required"`
	PostDate     time.Time            `json:"postDate" binding:"required"`
	Description  string               `json:"description" binding:"required"`
	ReferenceNum string               `json:"referenceNum,omitempty"`
	Splits       []CreateSplitRequest `json:"splits" binding:"required,min=2,dive"`
	// Force acknowledges the override warning when the stored transaction has
	// cleared or reconciled splits.
	Force bool `json:"force,omitempty"`
}

// DeleteTransactionRequest carries the version witness and override flag.
type DeleteTransactionRequest struct {
	Version string `json:"version" binding:"required"`
	Force   bool   `json:"force,omitempty"`
}

// SplitResponse is the API representation of one split.
type SplitResponse struct {
	SplitID        string `json:"splitID"`
	AccountID      string `json:"accountID"`
	Value          string `json:"value"`
	Quantity       string `json:"quantity"`
	Memo           string `json:"memo,omitempty"`
	Action         string `json:"action,omitempty"`
	ReconcileState string `json:"reconcileState"`
}

// TransactionResponse is the API representation of a transaction, carrying
// the version token to hand back on update.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	CurrencyCode  string          `json:"currencyCode"`
	PostDate      time.Time       `json:"postDate"`
	Description   string          `json:"description"`
	ReferenceNum  string          `json:"referenceNum,omitempty"`
	EnteredAt     time.Time       `json:"enteredAt"`
	Version       string          `json:"version"`
	Splits        []SplitResponse `json:"splits"`
	// RequiresOverrideWarning is true when editing or deleting this
	// transaction should first be acknowledged by the user because splits are
	// cleared or reconciled.
	RequiresOverrideWarning bool `json:"requiresOverrideWarning"`
}

// ToSplitResponse converts a domain split.
func ToSplitResponse(s domain.Split) SplitResponse {
	return SplitResponse{
		SplitID:        s.SplitID,
		AccountID:      s.AccountID,
		Value:          s.Value.StringFixed(),
		Quantity:       s.Quantity.StringFixed(),
		Memo:           s.Memo,
		Action:         s.Action,
		ReconcileState: string(s.ReconcileState),
	}
}

// ToTransactionResponse converts a versioned domain transaction.
func ToTransactionResponse(v domain.Versioned[domain.Transaction]) TransactionResponse {
	txn := v.Value
	splits := make([]SplitResponse, len(txn.Splits))
	for i, s := range txn.Splits {
		splits[i] = ToSplitResponse(s)
	}
	return TransactionResponse{
		TransactionID:           txn.TransactionID,
		CurrencyCode:            txn.CurrencyCode,
		PostDate:                txn.PostDate,
		Description:             txn.Description,
		ReferenceNum:            txn.ReferenceNum,
		EnteredAt:               txn.EnteredAt,
		Version:                 v.Token.String(),
		Splits:                  splits,
		RequiresOverrideWarning: txn.HasReconciledSplits(),
	}
}

// LedgerLineResponse is one row of an account's paginated ledger view.
type LedgerLineResponse struct {
	SplitResponse
	PostDate               time.Time `json:"postDate"`
	TransactionID          string    `json:"transactionID"`
	TransactionDescription string    `json:"transactionDescription"`
}

// ListLedgerParams holds pagination parameters for the ledger view.
type ListLedgerParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse is a page of an account's ledger.
type ListLedgerResponse struct {
	Lines     []LedgerLineResponse `json:"lines"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToLedgerLineResponses converts account splits to ledger rows.
func ToLedgerLineResponses(splits []domain.AccountSplit) []LedgerLineResponse {
	lines := make([]LedgerLineResponse, len(splits))
	for i, s := range splits {
		lines[i] = LedgerLineResponse{
			SplitResponse:          ToSplitResponse(s.Split),
			PostDate:               s.PostDate,
			TransactionID:          s.TransactionID,
			TransactionDescription: s.TransactionDescription,
		}
	}
	return lines
}
