package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

func TestRenderXLSX_RoundTrip(t *testing.T) {
	doc := domain.ReportDocument{
		Title:       "Transactions",
		GeneratedAt: time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
		Columns:     []string{"ID", "Status", "Amount"},
		Rows: [][]string{
			{"1", "PAID", "1500.00"},
			{"2", "PENDING", "300.00"},
		},
		Summary: []domain.SummaryLine{
			{Label: "Total received", Value: "1500.00"},
			{Label: "Balance", Value: "1500.00"},
		},
	}

	data, err := renderXLSX(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Transactions", title)

	header, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Amount", header)

	amount, err := f.GetCellValue(sheetName, "C5")
	require.NoError(t, err)
	assert.Equal(t, "300.00", amount)

	// Summary block starts one blank row below the last data row.
	label, err := f.GetCellValue(sheetName, "A7")
	require.NoError(t, err)
	assert.Equal(t, "Total received", label)
}

func TestRenderXLSX_EmptyDocument(t *testing.T) {
	doc := domain.ReportDocument{
		Title:       "Commissions",
		GeneratedAt: time.Now().UTC(),
		Columns:     []string{"ID", "Value"},
	}

	data, err := renderXLSX(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
