package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

func TestCommissionStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    domain.CommissionStatus
		to      domain.CommissionStatus
		allowed bool
	}{
		{domain.CommissionPending, domain.CommissionApproved, true},
		{domain.CommissionPending, domain.CommissionCancelled, true},
		{domain.CommissionPending, domain.CommissionPaid, false},
		{domain.CommissionPending, domain.CommissionPending, false},
		{domain.CommissionApproved, domain.CommissionPaid, true},
		{domain.CommissionApproved, domain.CommissionCancelled, true},
		{domain.CommissionApproved, domain.CommissionPending, false},
		{domain.CommissionPaid, domain.CommissionCancelled, false},
		{domain.CommissionPaid, domain.CommissionPaid, false},
		{domain.CommissionCancelled, domain.CommissionPending, false},
		{domain.CommissionCancelled, domain.CommissionApproved, false},
	}

	for _, tc := range testCases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCommissionIsMutable(t *testing.T) {
	pending := domain.Commission{Status: domain.CommissionPending}
	approved := domain.Commission{Status: domain.CommissionApproved}
	paid := domain.Commission{Status: domain.CommissionPaid}

	assert.True(t, pending.IsMutable())
	assert.False(t, approved.IsMutable())
	assert.False(t, paid.IsMutable())
}
