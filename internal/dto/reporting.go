package dto

import (
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// CashFlowParams binds the cash-flow query window.
type CashFlowParams struct {
	StartDate string `form:"start_date" binding:"required,dateonly"`
	EndDate   string `form:"end_date" binding:"required,dateonly"`
}

// CashFlowEntryResponse is one derived per-day cash-flow tuple.
type CashFlowEntryResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// CashFlowResponse is the ordered series for the requested window.
type CashFlowResponse struct {
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Entries   []CashFlowEntryResponse `json:"entries"`
}

// ToCashFlowEntryResponses converts domain entries to the wire shape with
// fixed two-decimal amounts.
func ToCashFlowEntryResponses(entries []domain.CashFlowEntry) []CashFlowEntryResponse {
	responses := make([]CashFlowEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = CashFlowEntryResponse{
			Date:    e.Date.Format(DateFormat),
			Income:  e.Income.StringFixed(2),
			Expense: e.Expense.StringFixed(2),
			Balance: e.Balance.StringFixed(2),
		}
	}
	return responses
}

// FinancialReportParams binds the financial report query string.
type FinancialReportParams struct {
	StartDate  string `form:"start_date" binding:"required,dateonly"`
	EndDate    string `form:"end_date" binding:"required,dateonly"`
	Type       string `form:"type" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,gt=0"`
	PersonID   *int64 `form:"person_id" binding:"omitempty,gt=0"`
}

// FinancialReportResponse is the summary plus line items for a window.
type FinancialReportResponse struct {
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Summary   domain.FinancialSummary `json:"summary"`
	LineItems []TransactionResponse   `json:"lineItems"`
}

// ExportParams binds the export path/query parameters shared by the
// transaction and commission export endpoints.
type ExportParams struct {
	Format string `uri:"format" binding:"required,oneof=excel xlsx pdf"`
}

// DocumentFormat maps the path value onto a renderer format. "excel" is the
// spreadsheet alias used in export URLs.
func (p ExportParams) DocumentFormat() domain.DocumentFormat {
	if p.Format == "pdf" {
		return domain.FormatPDF
	}
	return domain.FormatXLSX
}
