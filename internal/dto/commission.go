package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// CreateCommissionRequest defines the payload for creating a commission.
// When Value is omitted it derives from the contract value and percentage,
// rounded half-up to the currency minor unit.
type CreateCommissionRequest struct {
	ContractID       int64            `json:"contractID" binding:"required,gt=0"`
	AgentID          int64            `json:"agentID" binding:"required,gt=0"`
	CommissionTypeID *int64           `json:"commissionTypeID,omitempty"`
	Percentage       decimal.Decimal  `json:"percentage" binding:"required"`
	Value            *decimal.Decimal `json:"value,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

// UpdateCommissionRequest defines the payload for updating a pending
// commission. Only non-nil fields are applied.
type UpdateCommissionRequest struct {
	AgentID          *int64           `json:"agentID,omitempty" binding:"omitempty,gt=0"`
	CommissionTypeID *int64           `json:"commissionTypeID,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	Value            *decimal.Decimal `json:"value,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// PayCommissionRequest defines the payload for paying an approved commission.
type PayCommissionRequest struct {
	PaidAt        string `json:"paidAt" binding:"required,dateonly"`
	PaymentTypeID int64  `json:"paymentTypeID" binding:"required,gt=0"`
	BankAccountID *int64 `json:"bankAccountID,omitempty"`
	Notes         string `json:"notes,omitempty"`
	ReceiptRef    string `json:"receipt,omitempty"`
}

// CancelCommissionRequest defines the payload for cancelling a commission.
type CancelCommissionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ListCommissionsParams binds the commission list/export query string.
type ListCommissionsParams struct {
	Status           string `form:"status" binding:"omitempty,oneof=PENDING APPROVED PAID CANCELLED"`
	AgentID          *int64 `form:"agent_id" binding:"omitempty,gt=0"`
	ContractID       *int64 `form:"contract_id" binding:"omitempty,gt=0"`
	CommissionTypeID *int64 `form:"commission_type_id" binding:"omitempty,gt=0"`
	DateFrom         string `form:"date_from" binding:"omitempty,dateonly"`
	DateTo           string `form:"date_to" binding:"omitempty,dateonly"`
	SortBy           string `form:"sort_by" binding:"omitempty,oneof=id value percentage created_at"`
	SortDirection    string `form:"sort_direction" binding:"omitempty,oneof=asc desc"`
	Page             int    `form:"page" binding:"omitempty,gt=0"`
	PerPage          int    `form:"per_page" binding:"omitempty,gt=0,lte=100"`
}

// ToCommissionFilter converts bound query params into a domain filter.
func (p ListCommissionsParams) ToCommissionFilter() (domain.CommissionFilter, error) {
	filter := domain.CommissionFilter{
		AgentID:          p.AgentID,
		ContractID:       p.ContractID,
		CommissionTypeID: p.CommissionTypeID,
		SortBy:           p.SortBy,
		Page:             p.Page,
		PerPage:          p.PerPage,
	}
	if p.Status != "" {
		s := domain.CommissionStatus(p.Status)
		filter.Status = &s
	}
	if p.SortDirection == string(domain.SortDesc) {
		filter.SortDirection = domain.SortDesc
	} else {
		filter.SortDirection = domain.SortAsc
	}
	var err error
	if filter.DateFrom, err = parseOptionalDate(p.DateFrom); err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseOptionalDate(p.DateTo); err != nil {
		return filter, err
	}
	return filter, nil
}

// CommissionResponse defines the data returned for a commission.
type CommissionResponse struct {
	CommissionID     int64           `json:"commissionID"`
	ContractID       int64           `json:"contractID"`
	AgentID          int64           `json:"agentID"`
	CommissionTypeID *int64          `json:"commissionTypeID,omitempty"`
	Percentage       decimal.Decimal `json:"percentage"`
	Value            decimal.Decimal `json:"value"`
	Status           string          `json:"status"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	PaymentTypeID    *int64          `json:"paymentTypeID,omitempty"`
	BankAccountID    *int64          `json:"bankAccountID,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	ReceiptRef       string          `json:"receiptRef,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ListCommissionsResponse is one page of commissions plus paging totals.
type ListCommissionsResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"perPage"`
	Total       int64                `json:"total"`
}

// ToCommissionResponse converts a domain.Commission to its response DTO.
func ToCommissionResponse(c *domain.Commission) CommissionResponse {
	return CommissionResponse{
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
		CreatedAt:        c.CreatedAt,
		LastUpdatedAt:    c.LastUpdatedAt,
	}
}

// ToCommissionResponses converts a slice of domain commissions.
func ToCommissionResponses(commissions []domain.Commission) []CommissionResponse {
	responses := make([]CommissionResponse, len(commissions))
	for i := range commissions {
		responses[i] = ToCommissionResponse(&commissions[i])
	}
	return responses
}
