package mapping

import (
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/models"
)

// ToModelTransaction converts a domain transaction to its database row shape.
func ToModelTransaction(txn domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: txn.TransactionID,
		TxnType:       string(txn.Type),
		CategoryID:    txn.CategoryID,
		Amount:        txn.Amount,
		Status:        models.TransactionStatus(txn.Status),
		Description:   txn.Description,
		DueDate:       txn.DueDate,
		PaymentDate:   txn.PaymentDate,
		PersonID:      txn.PersonID,
		ContractID:    txn.ContractID,
		PropertyID:    txn.PropertyID,
		BankAccountID: txn.BankAccountID,
		PaymentTypeID: txn.PaymentTypeID,
		Notes:         txn.Notes,
		ReceiptRef:    txn.ReceiptRef,
		AuditFields: models.AuditFields{
			CreatedAt:     txn.CreatedAt,
			LastUpdatedAt: txn.LastUpdatedAt,
		},
	}
}

// ToDomainTransaction converts a database row to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.TxnType),
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Status:        domain.TransactionStatus(m.Status),
		Description:   m.Description,
		DueDate:       m.DueDate,
		PaymentDate:   m.PaymentDate,
		PersonID:      m.PersonID,
		ContractID:    m.ContractID,
		PropertyID:    m.PropertyID,
		BankAccountID: m.BankAccountID,
		PaymentTypeID: m.PaymentTypeID,
		Notes:         m.Notes,
		ReceiptRef:    m.ReceiptRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
