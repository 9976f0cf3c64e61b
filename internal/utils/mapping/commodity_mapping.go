package mapping

import (
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/models"
)

// ToModelCommodity converts a domain commodity for DB storage.
func ToModelCommodity(d domain.Commodity) models.Commodity {
	return models.Commodity{
		Code:        d.Code,
		Name:        d.Name,
		Symbol:      d.Symbol,
		Fraction:    d.Fraction,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommodity converts a DB commodity row to the domain representation.
func ToDomainCommodity(m models.Commodity) domain.Commodity {
	return domain.Commodity{
		Code:        m.Code,
		Name:        m.Name,
		Symbol:      m.Symbol,
		Fraction:    m.Fraction,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
