package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money owed to us or by us.
type TransactionType string

const (
	Receivable TransactionType = "RECEIVABLE"
	Payable    TransactionType = "PAYABLE"
)

// TransactionStatus is the lifecycle status of a transaction.
// The only legal transitions are PENDING -> PAID and PENDING -> CANCELLED;
// both target states are terminal.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionPaid      TransactionStatus = "PAID"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Transaction represents a single receivable or payable money movement.
// Note: Amount uses a precise decimal type and is always > 0; direction is
// carried by Type.
type Transaction struct {
	TransactionID int64             `json:"transactionID"`
	Type          TransactionType   `json:"type"`
	CategoryID    int64             `json:"categoryID"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	DueDate       time.Time         `json:"dueDate"`
	PaymentDate   *time.Time        `json:"paymentDate,omitempty"` // set iff Status == PAID

	// Foreign references owned by the catalog/identity services, not by this core.
	PersonID      *int64 `json:"personID,omitempty"`
	ContractID    *int64 `json:"contractID,omitempty"`
	PropertyID    *int64 `json:"propertyID,omitempty"`
	BankAccountID *int64 `json:"bankAccountID,omitempty"`
	PaymentTypeID *int64 `json:"paymentTypeID,omitempty"`

	Notes      string `json:"notes,omitempty"`
	ReceiptRef string `json:"receiptRef,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether the status machine permits moving from the
// current status to target. Terminal states permit nothing, including
// re-entering themselves.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	if s != TransactionPending {
		return false
	}
	return target == TransactionPaid || target == TransactionCancelled
}

// IsMutable reports whether the transaction's amount, dates and links may
// still be changed. Settled or cancelled history is immutable.
func (t *Transaction) IsMutable() bool {
	return t.Status == TransactionPending
}
