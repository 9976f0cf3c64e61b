package mapping

import (
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/models"
)

// ToModelAccount converts a domain account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		CommodityCode:   d.CommodityCode,
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		Hidden:          d.Hidden,
		Placeholder:     d.Placeholder,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a DB account row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		CommodityCode:   m.CommodityCode,
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		Hidden:          m.Hidden,
		Placeholder:     m.Placeholder,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
