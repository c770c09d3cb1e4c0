// Package aggregation computes derived financial summaries and cash-flow
// series over already-filtered transaction sets. Everything here is pure:
// the same input always produces bit-identical output, which is what lets
// the reporting gateway's two render paths embed the same numbers.
package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// Summarize accumulates count and total per (type, status) bucket and
// derives the convenience rollups used across reports.
func Summarize(txns []domain.Transaction) domain.FinancialSummary {
	summary := domain.FinancialSummary{}
	zero := decimal.Zero
	summary.TotalReceivablePending = zero
	summary.TotalPayablePending = zero
	summary.TotalReceived = zero
	summary.TotalPaidOut = zero

	initType := func(ts *domain.TypeSummary) {
		ts.Pending.Total = zero
		ts.Paid.Total = zero
		ts.Cancelled.Total = zero
	}
	initType(&summary.Receivable)
	initType(&summary.Payable)

	for _, txn := range txns {
		var ts *domain.TypeSummary
		if txn.Type == domain.Receivable {
			ts = &summary.Receivable
		} else {
			ts = &summary.Payable
		}
		switch txn.Status {
		case domain.TransactionPending:
			ts.Pending.Count++
			ts.Pending.Total = ts.Pending.Total.Add(txn.Amount)
		case domain.TransactionPaid:
			ts.Paid.Count++
			ts.Paid.Total = ts.Paid.Total.Add(txn.Amount)
		case domain.TransactionCancelled:
			ts.Cancelled.Count++
			ts.Cancelled.Total = ts.Cancelled.Total.Add(txn.Amount)
		}
	}

	summary.TotalReceivablePending = summary.Receivable.Pending.Total
	summary.TotalPayablePending = summary.Payable.Pending.Total
	summary.TotalReceived = summary.Receivable.Paid.Total
	summary.TotalPaidOut = summary.Payable.Paid.Total
	summary.Balance = summary.TotalReceived.Sub(summary.TotalPaidOut)
	return summary
}

// CashFlow produces one entry per calendar day in [start, end] that has at
// least one paid transaction, ordered by date. Income sums paid receivables,
// expense sums paid payables, and balance is the running net seeded from
// opening at the window start (pass decimal.Zero for a windowed balance).
func CashFlow(txns []domain.Transaction, start, end time.Time, opening decimal.Decimal) []domain.CashFlowEntry {
	type dayFlow struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	flows := make(map[time.Time]*dayFlow)
	for _, txn := range txns {
		if txn.Status != domain.TransactionPaid || txn.PaymentDate == nil {
			continue
		}
		day := truncateToDay(*txn.PaymentDate)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		flow, ok := flows[day]
		if !ok {
			flow = &dayFlow{income: decimal.Zero, expense: decimal.Zero}
			flows[day] = flow
		}
		if txn.Type == domain.Receivable {
			flow.income = flow.income.Add(txn.Amount)
		} else {
			flow.expense = flow.expense.Add(txn.Amount)
		}
	}

	days := make([]time.Time, 0, len(flows))
	for day := range flows {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	entries := make([]domain.CashFlowEntry, 0, len(days))
	balance := opening
	for _, day := range days {
		flow := flows[day]
		balance = balance.Add(flow.income).Sub(flow.expense)
		entries = append(entries, domain.CashFlowEntry{
			Date:    day,
			Income:  flow.income,
			Expense: flow.expense,
			Balance: balance,
		})
	}
	return entries
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
