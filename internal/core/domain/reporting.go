package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBucket accumulates count and amount for one (type, status) pair.
type StatusBucket struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// TypeSummary groups the status buckets of one transaction type.
type TypeSummary struct {
	Pending   StatusBucket `json:"pending"`
	Paid      StatusBucket `json:"paid"`
	Cancelled StatusBucket `json:"cancelled"`
}

// FinancialSummary is the derived point-in-time aggregate over a filtered
// transaction set. It is always recomputed, never persisted.
type FinancialSummary struct {
	Receivable TypeSummary `json:"receivable"`
	Payable    TypeSummary `json:"payable"`

	TotalReceivablePending decimal.Decimal `json:"totalReceivablePending"`
	TotalPayablePending    decimal.Decimal `json:"totalPayablePending"`
	TotalReceived          decimal.Decimal `json:"totalReceived"`
	TotalPaidOut           decimal.Decimal `json:"totalPaidOut"`
	Balance                decimal.Decimal `json:"balance"` // TotalReceived - TotalPaidOut
}

// CashFlowEntry is a derived per-day income/expense tuple with the running
// balance accumulated from the start of the query window.
type CashFlowEntry struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// DocumentFormat identifies a binary export format.
type DocumentFormat string

const (
	FormatXLSX DocumentFormat = "xlsx"
	FormatPDF  DocumentFormat = "pdf"
)

// SummaryLine is one labelled total in a document's summary block.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReportDocument is the logical payload handed to a renderer: header, line
// items and summary block. Both report paths must assemble the identical
// document for the same filter.
type ReportDocument struct {
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generatedAt"`
	PeriodStart *time.Time    `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time    `json:"periodEnd,omitempty"`
	Columns     []string      `json:"columns"`
	Rows        [][]string    `json:"rows"`
	Summary     []SummaryLine `json:"summary"`
}
