package services

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/core/aggregation"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/utils/money"
)

// TransactionSummaryLines converts a financial summary into the labelled
// summary block embedded in exported documents. Both report paths must embed
// numbers produced by this exact conversion.
func TransactionSummaryLines(summary domain.FinancialSummary) []domain.SummaryLine {
	return []domain.SummaryLine{
		{Label: "Receivable pending", Value: money.Format(summary.TotalReceivablePending)},
		{Label: "Payable pending", Value: money.Format(summary.TotalPayablePending)},
		{Label: "Total received", Value: money.Format(summary.TotalReceived)},
		{Label: "Total paid out", Value: money.Format(summary.TotalPaidOut)},
		{Label: "Balance", Value: money.Format(summary.Balance)},
	}
}

// AssembleTransactionsReport builds the logical export payload (header, line
// items, summary block) for a transaction set.
func AssembleTransactionsReport(txns []domain.Transaction, generatedAt time.Time) domain.ReportDocument {
	rows := make([][]string, len(txns))
	for i, txn := range txns {
		paymentDate := ""
		if txn.PaymentDate != nil {
			paymentDate = txn.PaymentDate.Format(dto.DateFormat)
		}
		rows[i] = []string{
			strconv.FormatInt(txn.TransactionID, 10),
			string(txn.Type),
			strconv.FormatInt(txn.CategoryID, 10),
			txn.Description,
			txn.DueDate.Format(dto.DateFormat),
			paymentDate,
			string(txn.Status),
			money.Format(txn.Amount),
		}
	}

	return domain.ReportDocument{
		Title:       "Transactions",
		GeneratedAt: generatedAt,
		Columns:     []string{"ID", "Type", "Category", "Description", "Due Date", "Payment Date", "Status", "Amount"},
		Rows:        rows,
		Summary:     TransactionSummaryLines(aggregation.Summarize(txns)),
	}
}

// AssembleCommissionsReport builds the logical export payload for a
// commission set.
func AssembleCommissionsReport(commissions []domain.Commission, generatedAt time.Time) domain.ReportDocument {
	totalValue := decimal.Zero
	totalPaid := decimal.Zero
	rows := make([][]string, len(commissions))
	for i, c := range commissions {
		approvedAt := ""
		if c.ApprovedAt != nil {
			approvedAt = c.ApprovedAt.Format(dto.DateFormat)
		}
		paidAt := ""
		if c.PaidAt != nil {
			paidAt = c.PaidAt.Format(dto.DateFormat)
		}
		rows[i] = []string{
			strconv.FormatInt(c.CommissionID, 10),
			strconv.FormatInt(c.ContractID, 10),
			strconv.FormatInt(c.AgentID, 10),
			c.Percentage.StringFixed(2),
			money.Format(c.Value),
			string(c.Status),
			approvedAt,
			paidAt,
		}
		if c.Status != domain.CommissionCancelled {
			totalValue = totalValue.Add(c.Value)
		}
		if c.Status == domain.CommissionPaid {
			totalPaid = totalPaid.Add(c.Value)
		}
	}

	return domain.ReportDocument{
		Title:       "Commissions",
		GeneratedAt: generatedAt,
		Columns:     []string{"ID", "Contract", "Agent", "Percentage", "Value", "Status", "Approved At", "Paid At"},
		Rows:        rows,
		Summary: []domain.SummaryLine{
			{Label: "Commission count", Value: strconv.Itoa(len(commissions))},
			{Label: "Total value", Value: money.Format(totalValue)},
			{Label: "Total paid", Value: money.Format(totalPaid)},
		},
	}
}

// AssembleReceipt builds the payment receipt payload for a single paid
// transaction.
func AssembleReceipt(txn *domain.Transaction, generatedAt time.Time) domain.ReportDocument {
	rows := [][]string{
		{"Transaction", strconv.FormatInt(txn.TransactionID, 10)},
		{"Type", string(txn.Type)},
		{"Description", txn.Description},
		{"Due date", txn.DueDate.Format(dto.DateFormat)},
		{"Payment date", txn.PaymentDate.Format(dto.DateFormat)},
		{"Amount", money.Format(txn.Amount)},
	}
	if txn.ReceiptRef != "" {
		rows = append(rows, []string{"Receipt reference", txn.ReceiptRef})
	}
	if txn.Notes != "" {
		rows = append(rows, []string{"Notes", txn.Notes})
	}

	return domain.ReportDocument{
		Title:       "Payment Receipt",
		GeneratedAt: generatedAt,
		Columns:     []string{"Field", "Value"},
		Rows:        rows,
	}
}
