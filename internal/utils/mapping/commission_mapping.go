package mapping

import (
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/models"
)

// ToModelCommission converts a domain commission to its database row shape.
func ToModelCommission(c domain.Commission) models.Commission {
	return models.Commission{
		CommissionID:     c.CommissionID,
		ContractID:       c.ContractID,
		AgentID:          c.AgentID,
		CommissionTypeID: c.CommissionTypeID,
		Percentage:       c.Percentage,
		Value:            c.Value,
		Status:           string(c.Status),
		ApprovedAt:       c.ApprovedAt,
		PaidAt:           c.PaidAt,
		PaymentTypeID:    c.PaymentTypeID,
		BankAccountID:    c.BankAccountID,
		Notes:            c.Notes,
		ReceiptRef:       c.ReceiptRef,
		AuditFields: models.AuditFields{
			CreatedAt:     c.CreatedAt,
			LastUpdatedAt: c.LastUpdatedAt,
		},
	}
}

// ToDomainCommission converts a database row to the domain shape.
func ToDomainCommission(m models.Commission) domain.Commission {
	return domain.Commission{
		CommissionID:     m.CommissionID,
		ContractID:       m.ContractID,
		AgentID:          m.AgentID,
		CommissionTypeID: m.CommissionTypeID,
		Percentage:       m.Percentage,
		Value:            m.Value,
		Status:           domain.CommissionStatus(m.Status),
		ApprovedAt:       m.ApprovedAt,
		PaidAt:           m.PaidAt,
		PaymentTypeID:    m.PaymentTypeID,
		BankAccountID:    m.BankAccountID,
		Notes:            m.Notes,
		ReceiptRef:       m.ReceiptRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
