package dto

import "github.com/finchbooks/finch/internal/core/domain"

// CreateCommodityRequest registers a commodity. Fraction is the number of
// decimal places amounts in this commodity carry.
type CreateCommodityRequest struct {
	Code     string `json:"code" binding:"required,max=16"`
	Name     string `json:"name" binding:"required"`
	Symbol   string `json:"symbol,omitempty"`
	Fraction int32  `json:"fraction" binding:"min=0,max=9"`
}

// UpdateCommodityRequest updates display fields. Fraction changes are
// rejected once the commodity is referenced by any account or split.
type UpdateCommodityRequest struct {
	Name     *string `json:"name,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
	Fraction *int32  `json:"fraction,omitempty" binding:"omitempty,min=0,max=9"`
}

// CommodityResponse is the API representation of a commodity.
type CommodityResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol,omitempty"`
	Fraction int32  `json:"fraction"`
}

// ToCommodityResponse converts a domain commodity.
func ToCommodityResponse(c domain.Commodity) CommodityResponse {
	return CommodityResponse{
		Code:     c.Code,
		Name:     c.Name,
		Symbol:   c.Symbol,
		Fraction: c.Fraction,
	}
}
