package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

func TestRenderPDF_CancelledContextStopsRender(t *testing.T) {
	r := NewPDFRenderer(PDFConfig{Timeout: 5 * time.Second, NoSandbox: true})
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := domain.ReportDocument{
		Title:       "Transactions Report",
		GeneratedAt: time.Now(),
		Columns:     []string{"ID", "Amount"},
		Rows:        [][]string{{"1", "100.00"}},
	}

	data, err := r.RenderPDF(ctx, doc)
	require.Error(t, err)
	assert.Nil(t, data)
}
