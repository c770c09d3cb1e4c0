package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission is the database row shape for the commissions table.
type Commission struct {
	CommissionID     int64           `db:"commission_id"`
	ContractID       int64           `db:"contract_id"`
	AgentID          int64           `db:"agent_id"`
	CommissionTypeID *int64          `db:"commission_type_id"`
	Percentage       decimal.Decimal `db:"percentage"`
	Value            decimal.Decimal `db:"value"`
	Status           string          `db:"status"`
	ApprovedAt       *time.Time      `db:"approved_at"`
	PaidAt           *time.Time      `db:"paid_at"`
	PaymentTypeID    *int64          `db:"payment_type_id"`
	BankAccountID    *int64          `db:"bank_account_id"`
	Notes            string          `db:"notes"`
	ReceiptRef       string          `db:"receipt_ref"`
	AuditFields
}
