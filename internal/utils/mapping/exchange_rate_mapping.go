package mapping

import (
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/models"
)

// ToModelExchangeRate converts a domain exchange rate for DB storage.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCode:       d.FromCode,
		ToCode:         d.ToCode,
		Rate:           d.Rate,
		DateEffective:  d.DateEffective,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a DB exchange rate row to the domain representation.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCode:       m.FromCode,
		ToCode:         m.ToCode,
		Rate:           m.Rate,
		DateEffective:  m.DateEffective,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
