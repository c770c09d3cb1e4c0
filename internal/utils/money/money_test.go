package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/realtyfin/realty_ledger_app/internal/utils/money"
)

func TestRoundCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"no rounding needed", "100.00", "100"},
		{"rounds down below half", "10.004", "10"},
		{"half rounds up", "10.005", "10.01"},
		{"above half rounds up", "10.006", "10.01"},
		{"long fraction", "33.333333", "33.33"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := decimal.RequireFromString(tc.input)
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, money.RoundCurrency(input).Equal(expected),
				"RoundCurrency(%s) = %s, want %s", tc.input, money.RoundCurrency(input), expected)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "100.00", money.Format(decimal.NewFromInt(100)))
	assert.Equal(t, "0.50", money.Format(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-3.20", money.Format(decimal.RequireFromString("-3.2")))
}

func TestPercentageOf(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		pct      string
		expected string
	}{
		{"six percent of contract", "500000", "6", "30000.00"},
		{"fractional percentage", "1000", "2.5", "25.00"},
		{"result needs rounding", "999.99", "3.333", "33.33"},
		{"half cent rounds up", "101", "2.5", "2.53"},
		{"zero percentage", "500000", "0", "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value := decimal.RequireFromString(tc.value)
			pct := decimal.RequireFromString(tc.pct)
			got := money.PercentageOf(value, pct)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}
