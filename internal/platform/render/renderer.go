package render

import (
	"context"
	"fmt"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
)

// LocalRenderer renders report documents in-process, dispatching on format.
// It backs the fallback path when the external render service is unreachable.
type LocalRenderer struct {
	pdf *PDFRenderer
}

// NewLocalRenderer creates the in-process renderer.
func NewLocalRenderer(pdf *PDFRenderer) *LocalRenderer {
	return &LocalRenderer{pdf: pdf}
}

var _ portssvc.ReportRenderer = (*LocalRenderer)(nil)

// Render produces the binary document for the requested format.
func (r *LocalRenderer) Render(ctx context.Context, doc domain.ReportDocument, format domain.DocumentFormat) ([]byte, error) {
	switch format {
	case domain.FormatXLSX:
		return renderXLSX(doc)
	case domain.FormatPDF:
		return r.pdf.RenderPDF(ctx, doc)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}
