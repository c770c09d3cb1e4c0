package aggregation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtyfin/realty_ledger_app/internal/core/aggregation"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(id int64, txnType domain.TransactionType, status domain.TransactionStatus, amount string, paidOn *time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Type:          txnType,
		Status:        status,
		Amount:        decimal.RequireFromString(amount),
		DueDate:       day(2026, time.March, 1),
		PaymentDate:   paidOn,
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := aggregation.Summarize(nil)

	assert.Equal(t, 0, summary.Receivable.Pending.Count)
	assert.Equal(t, 0, summary.Payable.Paid.Count)
	assert.True(t, summary.TotalReceived.IsZero())
	assert.True(t, summary.Balance.IsZero())
}

func TestSummarize_BucketsByTypeAndStatus(t *testing.T) {
	paid1 := day(2026, time.March, 10)
	paid2 := day(2026, time.March, 12)
	txns := []domain.Transaction{
		txn(1, domain.Receivable, domain.TransactionPending, "1500.00", nil),
		txn(2, domain.Receivable, domain.TransactionPending, "500.00", nil),
		txn(3, domain.Receivable, domain.TransactionPaid, "2000.00", &paid1),
		txn(4, domain.Receivable, domain.TransactionCancelled, "800.00", nil),
		txn(5, domain.Payable, domain.TransactionPending, "300.00", nil),
		txn(6, domain.Payable, domain.TransactionPaid, "450.00", &paid2),
	}

	summary := aggregation.Summarize(txns)

	assert.Equal(t, 2, summary.Receivable.Pending.Count)
	assert.Equal(t, "2000.00", summary.Receivable.Pending.Total.StringFixed(2))
	assert.Equal(t, 1, summary.Receivable.Paid.Count)
	assert.Equal(t, 1, summary.Receivable.Cancelled.Count)
	assert.Equal(t, 1, summary.Payable.Pending.Count)
	assert.Equal(t, 1, summary.Payable.Paid.Count)

	assert.Equal(t, "2000.00", summary.TotalReceivablePending.StringFixed(2))
	assert.Equal(t, "300.00", summary.TotalPayablePending.StringFixed(2))
	assert.Equal(t, "2000.00", summary.TotalReceived.StringFixed(2))
	assert.Equal(t, "450.00", summary.TotalPaidOut.StringFixed(2))
	assert.Equal(t, "1550.00", summary.Balance.StringFixed(2))
}

func TestSummarize_BalanceIsReceivedMinusPaidOut(t *testing.T) {
	paid := day(2026, time.January, 5)
	txns := []domain.Transaction{
		txn(1, domain.Receivable, domain.TransactionPaid, "100.10", &paid),
		txn(2, domain.Receivable, domain.TransactionPaid, "0.90", &paid),
		txn(3, domain.Payable, domain.TransactionPaid, "250.00", &paid),
	}

	summary := aggregation.Summarize(txns)

	require.True(t, summary.Balance.Equal(summary.TotalReceived.Sub(summary.TotalPaidOut)))
	assert.Equal(t, "-149.00", summary.Balance.StringFixed(2))
}

func TestCashFlow_SparseDaysWithRunningBalance(t *testing.T) {
	d5 := day(2026, time.April, 5)
	d9 := day(2026, time.April, 9)
	d20 := day(2026, time.April, 20)
	txns := []domain.Transaction{
		txn(1, domain.Receivable, domain.TransactionPaid, "1000.00", &d5),
		txn(2, domain.Payable, domain.TransactionPaid, "400.00", &d5),
		txn(3, domain.Payable, domain.TransactionPaid, "250.00", &d9),
		txn(4, domain.Receivable, domain.TransactionPaid, "75.00", &d20),
	}

	entries := aggregation.CashFlow(txns, day(2026, time.April, 1), day(2026, time.April, 30), decimal.Zero)

	// Only days with settled activity appear, in date order.
	require.Len(t, entries, 3)
	assert.Equal(t, d5, entries[0].Date)
	assert.Equal(t, "1000.00", entries[0].Income.StringFixed(2))
	assert.Equal(t, "400.00", entries[0].Expense.StringFixed(2))
	assert.Equal(t, "600.00", entries[0].Balance.StringFixed(2))

	assert.Equal(t, d9, entries[1].Date)
	assert.Equal(t, "0.00", entries[1].Income.StringFixed(2))
	assert.Equal(t, "250.00", entries[1].Expense.StringFixed(2))
	assert.Equal(t, "350.00", entries[1].Balance.StringFixed(2))

	assert.Equal(t, d20, entries[2].Date)
	assert.Equal(t, "425.00", entries[2].Balance.StringFixed(2))
}

func TestCashFlow_IgnoresUnpaidAndOutOfWindow(t *testing.T) {
	inWindow := day(2026, time.April, 10)
	before := day(2026, time.March, 31)
	after := day(2026, time.May, 1)
	txns := []domain.Transaction{
		txn(1, domain.Receivable, domain.TransactionPending, "999.00", nil),
		txn(2, domain.Receivable, domain.TransactionCancelled, "999.00", nil),
		txn(3, domain.Receivable, domain.TransactionPaid, "50.00", &before),
		txn(4, domain.Receivable, domain.TransactionPaid, "60.00", &after),
		txn(5, domain.Receivable, domain.TransactionPaid, "70.00", &inWindow),
	}

	entries := aggregation.CashFlow(txns, day(2026, time.April, 1), day(2026, time.April, 30), decimal.Zero)

	require.Len(t, entries, 1)
	assert.Equal(t, inWindow, entries[0].Date)
	assert.Equal(t, "70.00", entries[0].Income.StringFixed(2))
}

func TestCashFlow_OpeningBalanceSeedsRunningNet(t *testing.T) {
	d := day(2026, time.June, 1)
	txns := []domain.Transaction{
		txn(1, domain.Payable, domain.TransactionPaid, "100.00", &d),
	}

	entries := aggregation.CashFlow(txns, d, d, decimal.RequireFromString("500.00"))

	require.Len(t, entries, 1)
	assert.Equal(t, "400.00", entries[0].Balance.StringFixed(2))
}

func TestCashFlow_NormalizesPaymentTimestampsToDay(t *testing.T) {
	morning := time.Date(2026, time.July, 3, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, time.July, 3, 22, 15, 0, 0, time.UTC)
	txns := []domain.Transaction{
		txn(1, domain.Receivable, domain.TransactionPaid, "10.00", &morning),
		txn(2, domain.Receivable, domain.TransactionPaid, "20.00", &evening),
	}

	entries := aggregation.CashFlow(txns, day(2026, time.July, 1), day(2026, time.July, 31), decimal.Zero)

	require.Len(t, entries, 1)
	assert.Equal(t, day(2026, time.July, 3), entries[0].Date)
	assert.Equal(t, "30.00", entries[0].Income.StringFixed(2))
}
