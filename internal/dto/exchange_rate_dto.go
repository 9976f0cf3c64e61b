package dto

import (
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest authors a quote between two commodities.
type CreateExchangeRateRequest struct {
	FromCode      string          `json:"fromCode" binding:"required"`
	ToCode        string          `json:"toCode" binding:"required"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse is the API representation of a quote.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCode       string          `json:"fromCode"`
	ToCode         string          `json:"toCode"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
}

// ToExchangeRateResponse converts a domain exchange rate.
func ToExchangeRateResponse(r domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		FromCode:       r.FromCode,
		ToCode:         r.ToCode,
		Rate:           r.Rate,
		DateEffective:  r.DateEffective,
	}
}
