package mapping

import (
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/models"
)

// ToModelTransaction converts a domain transaction header for DB storage.
// The version stamp is set by the repository at commit time.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		CurrencyCode:  d.CurrencyCode,
		PostDate:      d.PostDate,
		Description:   d.Description,
		ReferenceNum:  d.ReferenceNum,
		EnteredAt:     d.EnteredAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a DB transaction row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		CurrencyCode:  m.CurrencyCode,
		PostDate:      m.PostDate,
		Description:   m.Description,
		ReferenceNum:  m.ReferenceNum,
		EnteredAt:     m.EnteredAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSplit converts a domain split for DB storage as rational pairs.
func ToModelSplit(d domain.Split) models.Split {
	return models.Split{
		SplitID:        d.SplitID,
		TransactionID:  d.TransactionID,
		AccountID:      d.AccountID,
		ValueNum:       d.Value.Num(),
		ValueDenom:     d.Value.Denom(),
		QuantityNum:    d.Quantity.Num(),
		QuantityDenom:  d.Quantity.Denom(),
		Memo:           d.Memo,
		Action:         d.Action,
		ReconcileState: string(d.ReconcileState),
	}
}

// ToDomainSplit rebuilds a domain split from a DB row.
func ToDomainSplit(m models.Split) (domain.Split, error) {
	value, err := ToDomainNumeric(m.ValueNum, m.ValueDenom)
	if err != nil {
		return domain.Split{}, err
	}
	quantity, err := ToDomainNumeric(m.QuantityNum, m.QuantityDenom)
	if err != nil {
		return domain.Split{}, err
	}
	return domain.Split{
		SplitID:        m.SplitID,
		TransactionID:  m.TransactionID,
		AccountID:      m.AccountID,
		Value:          value,
		Quantity:       quantity,
		Memo:           m.Memo,
		Action:         m.Action,
		ReconcileState: domain.ReconcileState(m.ReconcileState),
	}, nil
}
