package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the domain status on the persistence layer.
type TransactionStatus string

// Transaction is the database row shape for the transactions table.
type Transaction struct {
	TransactionID int64             `db:"transaction_id"`
	TxnType       string            `db:"txn_type"`
	CategoryID    int64             `db:"category_id"`
	Amount        decimal.Decimal   `db:"amount"`
	Status        TransactionStatus `db:"status"`
	Description   string            `db:"description"`
	DueDate       time.Time         `db:"due_date"`
	PaymentDate   *time.Time        `db:"payment_date"`
	PersonID      *int64            `db:"person_id"`
	ContractID    *int64            `db:"contract_id"`
	PropertyID    *int64            `db:"property_id"`
	BankAccountID *int64            `db:"bank_account_id"`
	PaymentTypeID *int64            `db:"payment_type_id"`
	Notes         string            `db:"notes"`
	ReceiptRef    string            `db:"receipt_ref"`
	AuditFields
}
