package domain

import "time"

// SortDirection for list queries.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TransactionFilter narrows a transaction list or export query. Nil pointer
// fields are not applied. Ordering is deterministic: the chosen sort key
// plus transaction_id ascending as tiebreak.
type TransactionFilter struct {
	Type        *TransactionType
	Status      *TransactionStatus
	CategoryID  *int64
	PersonID    *int64
	ContractID  *int64
	PropertyID  *int64
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	PaidFrom    *time.Time
	PaidTo      *time.Time
	Description string // case-insensitive substring match

	SortBy        string
	SortDirection SortDirection
	Page          int
	PerPage       int
}

// CommissionFilter narrows a commission list or export query.
type CommissionFilter struct {
	Status           *CommissionStatus
	AgentID          *int64
	ContractID       *int64
	CommissionTypeID *int64
	DateFrom         *time.Time
	DateTo           *time.Time

	SortBy        string
	SortDirection SortDirection
	Page          int
	PerPage       int
}
