package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// DateFormat is the wire format for calendar dates (due date, payment date).
const DateFormat = "2006-01-02"

// CreateTransactionRequest defines the payload for creating a transaction.
type CreateTransactionRequest struct {
	Type          string          `json:"type" binding:"required,oneof=RECEIVABLE PAYABLE"`
	CategoryID    int64           `json:"categoryID" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
	DueDate       string          `json:"dueDate" binding:"required,dateonly"`
	PersonID      *int64          `json:"personID,omitempty"`
	ContractID    *int64          `json:"contractID,omitempty"`
	PropertyID    *int64          `json:"propertyID,omitempty"`
	BankAccountID *int64          `json:"bankAccountID,omitempty"`
	PaymentTypeID *int64          `json:"paymentTypeID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// UpdateTransactionRequest defines the payload for updating a pending
// transaction. Only non-nil fields are applied.
type UpdateTransactionRequest struct {
	CategoryID    *int64           `json:"categoryID,omitempty" binding:"omitempty,gt=0"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	DueDate       *string          `json:"dueDate,omitempty" binding:"omitempty,dateonly"`
	PersonID      *int64           `json:"personID,omitempty"`
	ContractID    *int64           `json:"contractID,omitempty"`
	PropertyID    *int64           `json:"propertyID,omitempty"`
	BankAccountID *int64           `json:"bankAccountID,omitempty"`
	PaymentTypeID *int64           `json:"paymentTypeID,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// MarkTransactionPaidRequest defines the payload for settling a transaction.
// PaymentDate defaults to today when omitted.
type MarkTransactionPaidRequest struct {
	PaymentDate *string `json:"paymentDate,omitempty" binding:"omitempty,dateonly"`
	Notes       string  `json:"notes,omitempty"`
	ReceiptRef  string  `json:"receipt,omitempty"`
}

// CancelTransactionRequest defines the payload for cancelling a transaction.
type CancelTransactionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ListTransactionsParams binds the transaction list/export query string.
type ListTransactionsParams struct {
	Type          string `form:"type" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	Status        string `form:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	CategoryID    *int64 `form:"category_id" binding:"omitempty,gt=0"`
	PersonID      *int64 `form:"person_id" binding:"omitempty,gt=0"`
	ContractID    *int64 `form:"contract_id" binding:"omitempty,gt=0"`
	PropertyID    *int64 `form:"property_id" binding:"omitempty,gt=0"`
	DueDateFrom   string `form:"due_date_from" binding:"omitempty,dateonly"`
	DueDateTo     string `form:"due_date_to" binding:"omitempty,dateonly"`
	PaidDateFrom  string `form:"paid_date_from" binding:"omitempty,dateonly"`
	PaidDateTo    string `form:"paid_date_to" binding:"omitempty,dateonly"`
	Description   string `form:"description"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=id amount due_date payment_date created_at"`
	SortDirection string `form:"sort_direction" binding:"omitempty,oneof=asc desc"`
	Page          int    `form:"page" binding:"omitempty,gt=0"`
	PerPage       int    `form:"per_page" binding:"omitempty,gt=0,lte=100"`
}

// ToTransactionFilter converts bound query params into a domain filter.
func (p ListTransactionsParams) ToTransactionFilter() (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		CategoryID:  p.CategoryID,
		PersonID:    p.PersonID,
		ContractID:  p.ContractID,
		PropertyID:  p.PropertyID,
		Description: p.Description,
		SortBy:      p.SortBy,
		Page:        p.Page,
		PerPage:     p.PerPage,
	}
	if p.Type != "" {
		t := domain.TransactionType(p.Type)
		filter.Type = &t
	}
	if p.Status != "" {
		s := domain.TransactionStatus(p.Status)
		filter.Status = &s
	}
	if p.SortDirection == string(domain.SortDesc) {
		filter.SortDirection = domain.SortDesc
	} else {
		filter.SortDirection = domain.SortAsc
	}
	var err error
	if filter.DueDateFrom, err = parseOptionalDate(p.DueDateFrom); err != nil {
		return filter, err
	}
	if filter.DueDateTo, err = parseOptionalDate(p.DueDateTo); err != nil {
		return filter, err
	}
	if filter.PaidFrom, err = parseOptionalDate(p.PaidDateFrom); err != nil {
		return filter, err
	}
	if filter.PaidTo, err = parseOptionalDate(p.PaidDateTo); err != nil {
		return filter, err
	}
	return filter, nil
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64           `json:"transactionID"`
	Type          string          `json:"type"`
	CategoryID    int64           `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	DueDate       string          `json:"dueDate"`
	PaymentDate   *string         `json:"paymentDate,omitempty"`
	PersonID      *int64          `json:"personID,omitempty"`
	ContractID    *int64          `json:"contractID,omitempty"`
	PropertyID    *int64          `json:"propertyID,omitempty"`
	BankAccountID *int64          `json:"bankAccountID,omitempty"`
	PaymentTypeID *int64          `json:"paymentTypeID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ReceiptRef    string          `json:"receiptRef,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListTransactionsResponse is one page of transactions plus paging totals.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
	Total        int64                 `json:"total"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		CategoryID:    txn.CategoryID,
		Amount:        txn.Amount,
		Status:        string(txn.Status),
		Description:   txn.Description,
		DueDate:       txn.DueDate.Format(DateFormat),
		PersonID:      txn.PersonID,
		ContractID:    txn.ContractID,
		PropertyID:    txn.PropertyID,
		BankAccountID: txn.BankAccountID,
		PaymentTypeID: txn.PaymentTypeID,
		Notes:         txn.Notes,
		ReceiptRef:    txn.ReceiptRef,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
	if txn.PaymentDate != nil {
		paid := txn.PaymentDate.Format(DateFormat)
		resp.PaymentDate = &paid
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDate parses a wire-format calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
