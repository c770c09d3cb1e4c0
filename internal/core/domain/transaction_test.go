package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

func TestTransactionStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{domain.TransactionPending, domain.TransactionPaid, true},
		{domain.TransactionPending, domain.TransactionCancelled, true},
		{domain.TransactionPending, domain.TransactionPending, false},
		{domain.TransactionPaid, domain.TransactionCancelled, false},
		{domain.TransactionPaid, domain.TransactionPaid, false},
		{domain.TransactionPaid, domain.TransactionPending, false},
		{domain.TransactionCancelled, domain.TransactionCancelled, false},
		{domain.TransactionCancelled, domain.TransactionPaid, false},
		{domain.TransactionCancelled, domain.TransactionPending, false},
	}

	for _, tc := range testCases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTransactionIsMutable(t *testing.T) {
	pending := domain.Transaction{Status: domain.TransactionPending}
	paid := domain.Transaction{Status: domain.TransactionPaid}
	cancelled := domain.Transaction{Status: domain.TransactionCancelled}

	assert.True(t, pending.IsMutable())
	assert.False(t, paid.IsMutable())
	assert.False(t, cancelled.IsMutable())
}
