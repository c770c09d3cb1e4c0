package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionStatus is the lifecycle status of a commission payout.
// Legal transitions: PENDING -> APPROVED -> PAID, with CANCELLED reachable
// from PENDING or APPROVED. PAID and CANCELLED are terminal.
type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "PENDING"
	CommissionApproved  CommissionStatus = "APPROVED"
	CommissionPaid      CommissionStatus = "PAID"
	CommissionCancelled CommissionStatus = "CANCELLED"
)

// Commission represents a payout owed to an agent for a contract.
// Value normally derives from the contract value and percentage but may be
// stored as an explicit override at creation time.
type Commission struct {
	CommissionID     int64            `json:"commissionID"`
	ContractID       int64            `json:"contractID"`
	AgentID          int64            `json:"agentID"`
	CommissionTypeID *int64           `json:"commissionTypeID,omitempty"`
	Percentage       decimal.Decimal  `json:"percentage"` // 0-100
	Value            decimal.Decimal  `json:"value"`
	Status           CommissionStatus `json:"status"`
	ApprovedAt       *time.Time       `json:"approvedAt,omitempty"` // set once status reaches APPROVED
	PaidAt           *time.Time       `json:"paidAt,omitempty"`     // set iff status == PAID; implies ApprovedAt
	PaymentTypeID    *int64           `json:"paymentTypeID,omitempty"`
	BankAccountID    *int64           `json:"bankAccountID,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	ReceiptRef       string           `json:"receiptRef,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether the commission status machine permits
// moving from the current status to target.
func (s CommissionStatus) CanTransitionTo(target CommissionStatus) bool {
	switch s {
	case CommissionPending:
		return target == CommissionApproved || target == CommissionCancelled
	case CommissionApproved:
		return target == CommissionPaid || target == CommissionCancelled
	default:
		return false
	}
}

// IsMutable reports whether the commission's fields may still be changed.
func (c *Commission) IsMutable() bool {
	return c.Status == CommissionPending
}

// ContractRef is the narrow read-only projection of a contract supplied by
// the catalog service; only the value participates in ledger computation.
type ContractRef struct {
	ContractID int64           `json:"contractID"`
	Value      decimal.Decimal `json:"value"`
}
