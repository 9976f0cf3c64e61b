package dto

import (
	"github.com/finchbooks/finch/internal/core/domain"
)

// CreateAccountRequest creates a chart-of-accounts node. CommodityCode is
// fixed at creation and cannot be changed later.
type CreateAccountRequest struct {
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"accountType" binding:"required,accounttype"`
	CommodityCode   string `json:"commodityCode" binding:"required"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Description     string `json:"description,omitempty"`
	Hidden          bool   `json:"hidden,omitempty"`
	Placeholder     bool   `json:"placeholder,omitempty"`
}

// UpdateAccountRequest updates mutable account fields. Type and commodity are
// immutable; reparenting is validated to keep the tree acyclic.
type UpdateAccountRequest struct {
	Name            *string `json:"name,omitempty"`
	ParentAccountID *string `json:"parentAccountID,omitempty"`
	Description     *string `json:"description,omitempty"`
	Hidden          *bool   `json:"hidden,omitempty"`
	Placeholder     *bool   `json:"placeholder,omitempty"`
}

// AccountResponse is the API representation of one account.
type AccountResponse struct {
	AccountID       string `json:"accountID"`
	Name            string `json:"name"`
	AccountType     string `json:"accountType"`
	CommodityCode   string `json:"commodityCode"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Description     string `json:"description,omitempty"`
	Hidden          bool   `json:"hidden"`
	Placeholder     bool   `json:"placeholder"`
}

// AccountTreeNode is an account with its ordered visible children.
type AccountTreeNode struct {
	AccountResponse
	Children []AccountTreeNode `json:"children,omitempty"`
}

// ListAccountsParams controls tree rendering.
type ListAccountsParams struct {
	ShowHidden bool `form:"showHidden"`
}

// ToAccountResponse converts a domain account.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		CommodityCode:   a.CommodityCode,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		Hidden:          a.Hidden,
		Placeholder:     a.Placeholder,
	}
}
